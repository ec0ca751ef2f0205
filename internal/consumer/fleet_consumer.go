package consumer

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/voltride/rental-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FleetConsumer syncs the vehicle/station/customer directory from the fleet
// service into the local DB. On conflict only directory-owned columns are
// updated: vehicle status/station and station counters belong to this
// service and must survive a sync.
type FleetConsumer struct {
	db *gorm.DB
}

func NewFleetConsumer(db *gorm.DB) *FleetConsumer {
	return &FleetConsumer{db: db}
}

func (fc *FleetConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			fc.handleMessage(msg)
		}
		log.Println("[FleetConsumer] channel closed, stopping consumer")
	}()
}

func (fc *FleetConsumer) handleMessage(msg amqp.Delivery) {
	var err error
	switch msg.RoutingKey {
	case "fleet.vehicle.updated":
		err = fc.upsertVehicle(msg.Body)
	case "fleet.station.updated":
		err = fc.upsertStation(msg.Body)
	case "fleet.customer.updated":
		err = fc.upsertCustomer(msg.Body)
	default:
		log.Printf("[FleetConsumer] ignoring routing key %s", msg.RoutingKey)
		msg.Ack(false)
		return
	}

	if err != nil {
		log.Printf("[FleetConsumer] failed to process %s: %v", msg.RoutingKey, err)
		msg.Nack(false, true) // requeue
		return
	}
	msg.Ack(false)
}

func (fc *FleetConsumer) upsertVehicle(body []byte) error {
	var vehicle models.Vehicle
	if err := json.Unmarshal(body, &vehicle); err != nil {
		return err
	}

	result := fc.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"make", "model", "plate_number", "price_per_hour", "updated_at"}),
	}).Create(&vehicle)
	if result.Error != nil {
		return result.Error
	}

	log.Printf("[FleetConsumer] synced vehicle %d", vehicle.ID)
	return nil
}

func (fc *FleetConsumer) upsertStation(body []byte) error {
	var station models.Station
	if err := json.Unmarshal(body, &station); err != nil {
		return err
	}

	result := fc.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "capacity", "geofence_lat", "geofence_lng", "geofence_radius_m", "updated_at"}),
	}).Create(&station)
	if result.Error != nil {
		return result.Error
	}

	log.Printf("[FleetConsumer] synced station %d: %s", station.ID, station.Name)
	return nil
}

func (fc *FleetConsumer) upsertCustomer(body []byte) error {
	var customer models.Customer
	if err := json.Unmarshal(body, &customer); err != nil {
		return err
	}

	result := fc.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "verified", "updated_at"}),
	}).Create(&customer)
	if result.Error != nil {
		return result.Error
	}

	log.Printf("[FleetConsumer] synced customer %d", customer.ID)
	return nil
}
