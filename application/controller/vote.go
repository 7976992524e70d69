package controller

import (
	"errors"
	"net/http"

	apperrors "votegate.io/application/appErrors"
	"votegate.io/application/constants"
	"votegate.io/application/controller/dto"
	"votegate.io/application/interfaces"
	"votegate.io/application/usecases/ballot"
	server_response "votegate.io/infrastructure/serverResponse"
	"votegate.io/infrastructure/validator"
)

// SubmitBallot terminally spends a face-verified session token and records
// the ballot. A resubmission of the same token never records twice: it
// either completes a recording that failed mid-way or replays the
// original receipt.
func SubmitBallot(ctx *interfaces.ApplicationContext[dto.SubmitBallotDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	outcome, err := BallotService().Record(requestContext(ctx.Ctx), ctx.Body.Token, ctx.Body.Selection)
	if err != nil {
		switch {
		case errors.Is(err, ballot.ErrAlreadyRecorded):
			apperrors.ClientError(ctx.Ctx, "a ballot has already been recorded for this voter", nil, &constants.TOKEN_INVALIDATED)
		case errors.Is(err, ballot.ErrStorageUnavailable):
			apperrors.StorageUnavailableError(ctx.Ctx, err)
		default:
			respondTokenError(ctx.Ctx, err)
		}
		return
	}

	status := http.StatusCreated
	if outcome.Resumed {
		status = http.StatusOK
	}
	server_response.Responder.Respond(ctx.Ctx, status, "ballot recorded", map[string]any{
		"receipt": outcome.Receipt,
	}, nil, &constants.BALLOT_RECORDED)
}
