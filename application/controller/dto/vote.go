package dto

type SubmitBallotDTO struct {
	Token     string `json:"token" validate:"required,len=64,hexadecimal"`
	Selection string `json:"selection" validate:"required"`
}
