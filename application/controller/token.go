package controller

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "votegate.io/application/appErrors"
	"votegate.io/application/constants"
	"votegate.io/application/controller/dto"
	"votegate.io/application/interfaces"
	"votegate.io/application/usecases/token"
	"votegate.io/entities"
	"votegate.io/infrastructure/database/repository/cache"
	server_response "votegate.io/infrastructure/serverResponse"
	"votegate.io/infrastructure/validator"
)

// IssueToken re-issues the credential-stage session token for a voter who
// verified an OTP within the grant window but lost or expired the token
// before using it. The overwrite supersedes any previously active token.
func IssueToken(ctx *interfaces.ApplicationContext[any]) {
	voterID := ctx.GetStringContextData("VoterID")
	if voterID == "" {
		apperrors.AuthenticationError(ctx.Ctx, "unauthorized access")
		return
	}

	grant := cache.Cache.FindOne(fmt.Sprintf("%s-otu-grant", voterID))
	if grant == nil {
		apperrors.CustomError(ctx.Ctx, http.StatusForbidden, "otp verification required", &constants.OTP_REQUIRED)
		return
	}

	issued, err := TokenManager().Issue(requestContext(ctx.Ctx), voterID, entities.StageCredential)
	if err != nil {
		apperrors.StorageUnavailableError(ctx.Ctx, err)
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "session token issued", map[string]any{
		"token":     issued.Secret,
		"stage":     issued.Stage,
		"expiresAt": issued.ExpiresAt,
	}, nil, nil)
}

// ValidateToken is the read-only status check: it reports whether a
// session token is still usable without spending it.
func ValidateToken(ctx *interfaces.ApplicationContext[dto.ValidateTokenDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	record, err := TokenManager().Validate(requestContext(ctx.Ctx), ctx.Body.Token)
	if err != nil {
		respondTokenError(ctx.Ctx, err)
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "token is valid", map[string]any{
		"voterID":   record.VoterID,
		"stage":     record.Stage,
		"expiresAt": record.ExpiresAt,
	}, nil, nil)
}

// respondTokenError maps token manager failures onto the response
// taxonomy. All of them restart the voter from authentication, so they
// share one response code with distinct messages.
func respondTokenError(ctx interface{}, err error) {
	switch {
	case errors.Is(err, token.ErrTokenNotFound):
		apperrors.CustomError(ctx, http.StatusUnauthorized, "unrecognized session token", &constants.TOKEN_INVALIDATED)
	case errors.Is(err, token.ErrTokenExpired):
		apperrors.CustomError(ctx, http.StatusUnauthorized, "session token expired", &constants.TOKEN_INVALIDATED)
	case errors.Is(err, token.ErrTokenAlreadyUsed):
		apperrors.CustomError(ctx, http.StatusUnauthorized, "session token already used", &constants.TOKEN_INVALIDATED)
	case errors.Is(err, token.ErrStageNotSatisfied):
		apperrors.CustomError(ctx, http.StatusForbidden, "session token does not authorize this step", &constants.TOKEN_INVALIDATED)
	case errors.Is(err, token.ErrStorageUnavailable):
		apperrors.StorageUnavailableError(ctx, err)
	default:
		apperrors.FatalServerError(ctx, err)
	}
}
