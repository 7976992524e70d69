package entities

import (
	"time"

	"votegate.io/application/utils"
)

type TokenStage string

const (
	// issued after OTP success, authorizes the face verification step
	StageCredential TokenStage = "credential"
	// issued after a live face match, authorizes ballot submission
	StageFaceVerified TokenStage = "face_verified"
)

// A one-time-use session token (OTU). Only the SHA-256 digest of the
// secret is stored; the raw secret never touches the database. At most one
// active token exists per voter, enforced by upserting on voterID. Used
// flips false -> true exactly once, via a conditional update.
type SessionToken struct {
	VoterID   string     `bson:"voterID" json:"voterID"`
	TokenHash string     `bson:"tokenHash" json:"-"`
	Stage     TokenStage `bson:"stage" json:"stage"`
	ExpiresAt time.Time  `bson:"expiresAt" json:"expiresAt"`
	Used      bool       `bson:"used" json:"used"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model SessionToken) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
	}
	if model.ID == "" {
		model.ID = utils.GenerateULIDString()
	}
	model.UpdatedAt = now
	return &model
}
