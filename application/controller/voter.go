package controller

import (
	"net/http"

	apperrors "votegate.io/application/appErrors"
	"votegate.io/application/interfaces"
	"votegate.io/application/repository"
	"votegate.io/application/utils"
	server_response "votegate.io/infrastructure/serverResponse"
)

// FetchVoter returns the display fields for the session's voter, resolved
// through a still-valid session token. Nothing biometric and nothing that
// identifies the voter beyond what the client already supplied leaves here.
func FetchVoter(ctx *interfaces.ApplicationContext[any]) {
	tokenSecret := ctx.GetHeader("X-Session-Token")
	if tokenSecret == nil {
		apperrors.AuthenticationError(ctx.Ctx, "missing session token")
		return
	}

	session, err := TokenManager().Validate(requestContext(ctx.Ctx), *tokenSecret)
	if err != nil {
		respondTokenError(ctx.Ctx, err)
		return
	}

	voter, err := repository.VoterRepo().FindByID(session.VoterID)
	if err != nil {
		apperrors.StorageUnavailableError(ctx.Ctx, err)
		return
	}
	if voter == nil {
		apperrors.NotFoundError(ctx.Ctx, "voter record not found")
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "voter fetched", map[string]any{
		"rollNumber": voter.RollNumber,
		"phone":      utils.MaskPhoneNumber(voter.Phone),
		"enrolled":   voter.Enrolled,
		"stage":      session.Stage,
	}, nil, nil)
}
