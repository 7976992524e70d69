package dto

type ValidateTokenDTO struct {
	Token string `json:"token" validate:"required,len=64,hexadecimal"`
}
