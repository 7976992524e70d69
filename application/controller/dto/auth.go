package dto

type VerifyVoterDTO struct {
	NationalID string `json:"nationalID" validate:"required,national_id"`
	RollNumber string `json:"rollNumber" validate:"required,roll_number"`
}

type VerifyOTPDTO struct {
	OTP string `json:"otp" validate:"required,len=6,numeric"`
}
