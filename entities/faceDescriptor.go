package entities

import (
	"time"

	"votegate.io/application/utils"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationFailed   VerificationStatus = "failed"
)

// The enrolled face descriptor for a voter. Exactly one record per voter;
// re-enrollment overwrites the whole record, never part of it. Status is
// advanced only by the verification gate.
type FaceDescriptor struct {
	VoterID    string             `bson:"voterID" json:"voterID"`
	Descriptor []float64          `bson:"descriptor" json:"-"`
	Confidence float64            `bson:"confidence" json:"confidence"`
	Status     VerificationStatus `bson:"status" json:"status"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model FaceDescriptor) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
	}
	if model.ID == "" {
		model.ID = utils.GenerateULIDString()
	}
	if model.Status == "" {
		model.Status = VerificationPending
	}
	model.UpdatedAt = now
	return &model
}
