// Package models defines server-side data models persisted in the database.
package models

import (
	"time"

	"github.com/dmitrijs2005/recipex/internal/server/vitals"
)

// User is a registered person. Email is unique and stored lower-cased.
// PCPhysicianID and VisitingNurseID point at users that carry a Caregiver facet.
type User struct {
	ID              int64
	Email           string
	Name            string
	Surname         string
	Birth           time.Time
	Sex             string
	City            string
	Address         string
	PCPhysicianID   *int64
	VisitingNurseID *int64
	CreatedAt       time.Time
}

// Caregiver is the optional professional facet of a User, keyed by the
// user's id.
type Caregiver struct {
	UserID   int64
	Field    string
	YearsExp *int64
}

// Profile is a User together with its facet and relation sets.
type Profile struct {
	User
	Caregiver  *Caregiver
	Relatives  []int64
	Caregivers []int64
	Patients   []int64
}

// Measurement is a clinical reading owned by one user. Only the fields of
// Kind's group are set in Values.
type Measurement struct {
	ID        int64
	UserID    int64
	DateTime  time.Time
	Kind      vitals.Kind
	Values    vitals.Values
	CreatedAt time.Time
}

// Message is owned by its receiver.
type Message struct {
	ID            int64
	SenderID      int64
	ReceiverID    int64
	Body          string
	HasRead       bool
	MeasurementID *int64
	CreatedAt     time.Time
}
