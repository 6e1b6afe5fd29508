// Package relations persists the many-to-many user relations: symmetric
// relatives, and patient-caregiver care relations backing both the patient's
// caregivers set and the caregiver's patients set.
package relations

import "context"

type Repository interface {
	Relatives(ctx context.Context, userID int64) ([]int64, error)
	// AddRelative links both users to each other. Existing links are kept.
	AddRelative(ctx context.Context, userID, relativeID int64) error
	// RemoveRelative unlinks both directions.
	RemoveRelative(ctx context.Context, userID, relativeID int64) error

	CaregiversOf(ctx context.Context, patientID int64) ([]int64, error)
	PatientsOf(ctx context.Context, caregiverID int64) ([]int64, error)
	AddCare(ctx context.Context, patientID, caregiverID int64) error
	RemoveCare(ctx context.Context, patientID, caregiverID int64) error
}
