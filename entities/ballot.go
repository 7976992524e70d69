package entities

import (
	"time"

	"votegate.io/application/utils"
)

// A recorded ballot. The selection payload is opaque to this service;
// tallying happens elsewhere. The unique voterID index backs up the
// single-use token guarantee with a second line of defense.
type Ballot struct {
	VoterID   string `bson:"voterID" json:"voterID"`
	Selection string `bson:"selection" json:"-"`
	TokenID   string `bson:"tokenID" json:"tokenID"`
	// confirmation code shown to the voter; carries no link to the
	// selection
	Receipt     string    `bson:"receipt" json:"receipt"`
	SubmittedAt time.Time `bson:"submittedAt" json:"submittedAt"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model Ballot) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		model.ID = utils.GenerateULIDString()
	}
	if model.SubmittedAt.IsZero() {
		model.SubmittedAt = now
	}
	model.UpdatedAt = now
	return &model
}
