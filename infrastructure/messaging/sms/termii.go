package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"votegate.io/infrastructure/logger"
	"votegate.io/infrastructure/network"
)

type TermiiOTPResponse struct {
	MessageID *string `json:"message_id"`
	Code      *string `json:"code"`
}

type TermiiService struct {
	Network *network.NetworkController
	API_KEY string
}

// SendOTP delivers the verification code over SMS. Outside production the
// send is skipped because GenerateOTP already pins the code for test
// devices.
func (ts *TermiiService) SendOTP(phone string, otp string) bool {
	if os.Getenv("ENV") != "production" {
		return true
	}
	response, statusCode, err := ts.Network.Post(context.Background(), "/sms/send", nil, map[string]any{
		"api_key": ts.API_KEY,
		"from":    os.Getenv("SMS_SENDER_ID"),
		"to":      phone,
		"sms":     fmt.Sprintf("Your voter verification code is %s. Valid for 10 minutes, one-time use only.", otp),
		"type":    "plain",
		"channel": "dnd",
	})
	if err != nil {
		logger.Error("error sending sms", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return false
	}
	var termiiResponse TermiiOTPResponse
	json.Unmarshal(*response, &termiiResponse)
	if *statusCode != 200 {
		logger.Error("request to termii for sms delivery was unsuccessful", logger.LoggerOptions{
			Key:  "statusCode",
			Data: fmt.Sprintf("%d", *statusCode),
		}, logger.LoggerOptions{
			Key:  "data",
			Data: termiiResponse,
		})
		return false
	}
	logger.Info(fmt.Sprintf("SMS OTP sent to %s", phone))
	return true
}
