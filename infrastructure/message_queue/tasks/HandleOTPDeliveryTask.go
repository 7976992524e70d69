package queue_tasks

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	"votegate.io/infrastructure/logger"
	mq_types "votegate.io/infrastructure/message_queue/types"
	"votegate.io/infrastructure/messaging/sms"
)

var HandleOTPDeliveryTaskName mq_types.Queues = "send_sms"

type SendOTPPayload struct {
	To  string
	OTP string
}

func HandleOTPDeliveryTask(ctx context.Context, t *asynq.Task) error {
	var payload SendOTPPayload
	err := json.Unmarshal(t.Payload(), &payload)
	if err != nil {
		logger.Error("an error occured while unmarshalling otp queue payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}
	sms.SMSService.SendOTP(payload.To, payload.OTP)
	return nil
}
