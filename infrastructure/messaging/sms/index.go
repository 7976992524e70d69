package sms

import (
	"os"

	"votegate.io/infrastructure/network"
)

type SMSServiceType interface {
	SendOTP(phone string, otp string) bool
}

var SMSService SMSServiceType

func InitialiseSMSService() {
	SMSService = &TermiiService{
		Network: &network.NetworkController{
			BaseUrl: os.Getenv("TERMII_BASE_URL"),
		},
		API_KEY: os.Getenv("TERMII_API_KEY"),
	}
}
