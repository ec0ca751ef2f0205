package fare

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBillableHours(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{"exact one hour", base.Add(1 * time.Hour), 1},
		{"partial hour rounds up", base.Add(90 * time.Minute), 2},
		{"one minute rounds up to an hour", base.Add(1 * time.Minute), 1},
		{"end equals start floors at one", base, 1},
		{"end before start floors at one", base.Add(-2 * time.Hour), 1},
		{"three and a bit", base.Add(3*time.Hour + 1*time.Second), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BillableHours(base, tt.end))
		})
	}
}

func TestCompute(t *testing.T) {
	assert.Equal(t, 10.0, Compute(10, 1))
	assert.Equal(t, 30.0, Compute(10, 3))
	assert.Equal(t, 8.0, Compute(7.5, 1))
	assert.Equal(t, 10.0, Compute(10, 0), "duration floors at 1")
}

func TestLateReturnPenalty(t *testing.T) {
	scheduled := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0.0, LateReturnPenalty(scheduled, scheduled), "on time")
	assert.Equal(t, 0.0, LateReturnPenalty(scheduled, scheduled.Add(-10*time.Minute)), "early")
	assert.Equal(t, 30.0, LateReturnPenalty(scheduled, scheduled.Add(30*time.Minute)))
	assert.Equal(t, 120.0, LateReturnPenalty(scheduled, scheduled.Add(150*time.Minute)), "capped at 120")
	assert.Equal(t, 120.0, LateReturnPenalty(scheduled, scheduled.Add(48*time.Hour)), "cap holds for very late returns")
	assert.Equal(t, 1.0, LateReturnPenalty(scheduled, scheduled.Add(30*time.Second)), "started minute counts in full")
}
