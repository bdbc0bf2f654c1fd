package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reservation states.
const (
	ReservationCancelled = -1
	ReservationPending   = 0
	ReservationConfirmed = 1
)

// ReservationInfo carries the patient details attached to a reservation.
// Gender is M or F, visit is F (first visit) or R (revisit); both are
// normalized to uppercase before storage.
type ReservationInfo struct {
	Name      string `bson:"name,omitempty" json:"name,omitempty"`
	Gender    string `bson:"gender,omitempty" json:"gender,omitempty"`
	Visit     string `bson:"visit,omitempty" json:"visit,omitempty"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
	Questions string `bson:"questions,omitempty" json:"questions,omitempty"`
}

// Reservation represents an appointment request.
type Reservation struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	State           int                `bson:"state" json:"state"`
	Inquiries       []string           `bson:"inquiries" json:"inquiries"`
	Symptoms        []string           `bson:"symptoms" json:"symptoms"`
	ReservationDate *time.Time         `bson:"reservationDate,omitempty" json:"reservationDate,omitempty"`
	PublishedDate   time.Time          `bson:"publishedDate" json:"publishedDate"`
	Info            ReservationInfo    `bson:"info" json:"info"`
}
