package entities

import (
	"time"

	"votegate.io/application/utils"
)

// A voter on the electoral roll. Keyed externally by the national id and
// roll number pair; the photo is the enrollment source for the face
// descriptor and is only ever read by the enrollment pipeline.
type Voter struct {
	NationalID string `bson:"nationalID" json:"nationalID" validate:"national_id"`
	RollNumber string `bson:"rollNumber" json:"rollNumber" validate:"roll_number"`
	Phone      string `bson:"phone" json:"phone"`
	Photo      []byte `bson:"photo" json:"-"`
	Enrolled   bool   `bson:"enrolled" json:"enrolled"`
	Blocked    bool   `bson:"blocked" json:"-"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model Voter) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		model.ID = utils.GenerateULIDString()
	}
	model.UpdatedAt = now
	return &model
}
