package dto

type EnrollFaceDTO struct {
	VoterID string `json:"voterID" validate:"required"`
	// base64 encoded enrollment photo
	Photo string `json:"photo" validate:"required"`
}
