package controller

import (
	"errors"
	"net/http"

	apperrors "votegate.io/application/appErrors"
	"votegate.io/application/constants"
	"votegate.io/application/controller/dto"
	"votegate.io/application/interfaces"
	"votegate.io/application/usecases/token"
	"votegate.io/application/usecases/verification"
	"votegate.io/infrastructure/biometric"
	server_response "votegate.io/infrastructure/serverResponse"
	"votegate.io/infrastructure/validator"
)

// SubmitLiveCapture runs one face verification attempt. The live
// descriptor exists only for the duration of this request.
func SubmitLiveCapture(ctx *interfaces.ApplicationContext[dto.SubmitLiveCaptureDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	live, err := biometric.DecodeDescriptorJSON(ctx.Body.Descriptor)
	if err != nil {
		apperrors.ClientError(ctx.Ctx, "malformed face descriptor", nil, nil)
		return
	}

	result, err := VerificationGate().SubmitLiveCapture(requestContext(ctx.Ctx), ctx.Body.Token, live, ctx.Body.Frames)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrTokenNotFound),
			errors.Is(err, token.ErrTokenExpired),
			errors.Is(err, token.ErrTokenAlreadyUsed),
			errors.Is(err, token.ErrStageNotSatisfied):
			respondTokenError(ctx.Ctx, err)
		case errors.Is(err, verification.ErrNotEnrolled):
			apperrors.CustomError(ctx.Ctx, http.StatusNotFound, "voter has no enrolled descriptor", &constants.VOTER_NOT_ENROLLED)
		case errors.Is(err, biometric.ErrNoFrames):
			apperrors.CustomError(ctx.Ctx, http.StatusBadRequest, "camera feed produced no frames", &constants.LIVENESS_NOT_SATISFIED)
		case errors.Is(err, biometric.ErrInvalidDescriptor):
			apperrors.ClientError(ctx.Ctx, "malformed face descriptor", nil, nil)
		case errors.Is(err, verification.ErrStorageUnavailable), errors.Is(err, token.ErrStorageUnavailable):
			apperrors.StorageUnavailableError(ctx.Ctx, err)
		default:
			apperrors.FatalServerError(ctx.Ctx, err)
		}
		return
	}

	switch result.State {
	case verification.StateMatched:
		server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "face verified", map[string]any{
			"state":     result.State,
			"token":     result.RotatedToken.Secret,
			"stage":     result.RotatedToken.Stage,
			"expiresAt": result.RotatedToken.ExpiresAt,
		}, nil, nil)
	case verification.StateRateLimited:
		apperrors.RateLimitError(ctx.Ctx, result.RetryAfter, &constants.VERIFICATION_RATE_LIMITED)
	default:
		server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "face did not match", map[string]any{
			"state":        result.State,
			"attemptsLeft": result.AttemptsLeft,
		}, nil, &constants.FACE_NOT_MATCHED)
	}
}
