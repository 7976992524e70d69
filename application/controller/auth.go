package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "votegate.io/application/appErrors"
	"votegate.io/application/constants"
	"votegate.io/application/controller/dto"
	"votegate.io/application/interfaces"
	"votegate.io/application/repository"
	"votegate.io/application/utils"
	"votegate.io/entities"
	"votegate.io/infrastructure/auth"
	"votegate.io/infrastructure/database/repository/cache"
	messagequeue "votegate.io/infrastructure/message_queue"
	queue_tasks "votegate.io/infrastructure/message_queue/tasks"
	mq_types "votegate.io/infrastructure/message_queue/types"
	server_response "votegate.io/infrastructure/serverResponse"
	"votegate.io/infrastructure/validator"
)

const verifyVoterIntent = "verify_voter"

// VerifyVoter resolves electoral roll credentials to a voter record and
// dispatches an OTP to the registered phone. Nothing about the voter
// beyond a masked phone number leaves this endpoint.
func VerifyVoter(ctx *interfaces.ApplicationContext[dto.VerifyVoterDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	voter, err := repository.VoterRepo().FindOneByFilter(map[string]interface{}{
		"nationalID": ctx.Body.NationalID,
		"rollNumber": ctx.Body.RollNumber,
	})
	if err != nil {
		apperrors.StorageUnavailableError(ctx.Ctx, err)
		return
	}
	if voter == nil {
		apperrors.NotFoundError(ctx.Ctx, "no voter record matches the provided credentials")
		return
	}
	if voter.Blocked {
		apperrors.ClientError(ctx.Ctx, "this voter record is blocked. visit a polling officer", nil, nil)
		return
	}

	otp, err := auth.GenerateOTP(6, voter.Phone)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	cache.Cache.CreateEntry(fmt.Sprintf("%s-otp-intent", voter.Phone), verifyVoterIntent, constants.OTP_TTL)

	otpPayload, _ := json.Marshal(queue_tasks.SendOTPPayload{
		To:  voter.Phone,
		OTP: *otp,
	})
	messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
		Name:     queue_tasks.HandleOTPDeliveryTaskName,
		Payload:  otpPayload,
		Priority: mq_types.High,
		MaxRetry: 3,
	})

	// voters registered before descriptor capture get their enrollment
	// queued from the photo on file
	if !voter.Enrolled && len(voter.Photo) != 0 {
		extractionPayload, _ := json.Marshal(queue_tasks.ExtractDescriptorPayload{
			VoterID: voter.ID,
		})
		messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
			Name:     queue_tasks.HandleDescriptorExtractionTaskName,
			Payload:  extractionPayload,
			Priority: mq_types.Low,
			MaxRetry: 5,
		})
	}

	otpToken, err := auth.GenerateAuthToken(auth.ClaimsData{
		VoterID:   voter.ID,
		Phone:     &voter.Phone,
		Intent:    verifyVoterIntent,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(constants.OTP_TTL).Unix(),
		DeviceID:  ctx.DeviceID,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "otp sent to registered phone", map[string]any{
		"phone":    utils.MaskPhoneNumber(voter.Phone),
		"otpToken": otpToken,
	}, nil, &constants.OTP_REQUIRED)
}

// ResendOTP regenerates and redelivers the code for an authenticated OTP
// session. The previous code is superseded by the overwrite.
func ResendOTP(ctx *interfaces.ApplicationContext[any]) {
	phone := ctx.GetStringContextData("OTPPhone")
	if phone == "" {
		apperrors.AuthenticationError(ctx.Ctx, "unauthorized access")
		return
	}

	otp, err := auth.GenerateOTP(6, phone)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	otpPayload, _ := json.Marshal(queue_tasks.SendOTPPayload{
		To:  phone,
		OTP: *otp,
	})
	messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
		Name:     queue_tasks.HandleOTPDeliveryTaskName,
		Payload:  otpPayload,
		Priority: mq_types.High,
		MaxRetry: 3,
	})

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "otp sent to registered phone", map[string]any{
		"phone": utils.MaskPhoneNumber(phone),
	}, nil, &constants.OTP_REQUIRED)
}

// VerifyOTP burns the OTP and issues the credential-stage session token
// that authorizes face verification.
func VerifyOTP(ctx *interfaces.ApplicationContext[dto.VerifyOTPDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	phone := ctx.GetStringContextData("OTPPhone")
	voterID := ctx.GetStringContextData("VoterID")
	if phone == "" || voterID == "" {
		apperrors.AuthenticationError(ctx.Ctx, "unauthorized access")
		return
	}

	msg, success := auth.VerifyOTP(phone, ctx.Body.OTP)
	if !success {
		apperrors.ClientError(ctx.Ctx, msg, nil, nil)
		return
	}
	// the grant lets the voter re-issue a credential token (lost or expired
	// before use) without another OTP round trip; the intent entry is left
	// to lapse with its TTL so the otp JWT keeps working for that window
	cache.Cache.CreateEntry(fmt.Sprintf("%s-otu-grant", voterID), "1", constants.OTUTimeToLive())

	issued, err := TokenManager().Issue(requestContext(ctx.Ctx), voterID, entities.StageCredential)
	if err != nil {
		apperrors.StorageUnavailableError(ctx.Ctx, err)
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "voter authenticated", map[string]any{
		"token":     issued.Secret,
		"stage":     issued.Stage,
		"expiresAt": issued.ExpiresAt,
	}, nil, nil)
}
