package controller

import (
	"errors"
	"net/http"

	apperrors "votegate.io/application/appErrors"
	"votegate.io/application/constants"
	"votegate.io/application/controller/dto"
	"votegate.io/application/interfaces"
	"votegate.io/application/usecases/enrollment"
	"votegate.io/application/utils"
	"votegate.io/infrastructure/biometric"
	server_response "votegate.io/infrastructure/serverResponse"
	"votegate.io/infrastructure/validator"
)

// EnrollFace extracts and stores the reference descriptor for a voter.
// Re-running with the same photo is an overwrite, not a duplicate.
func EnrollFace(ctx *interfaces.ApplicationContext[dto.EnrollFaceDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	photo, err := utils.DecodeBase64Image(ctx.Body.Photo)
	if err != nil {
		apperrors.ClientError(ctx.Ctx, "invalid image format", nil, nil)
		return
	}

	err = EnrollmentService().EnrollFace(requestContext(ctx.Ctx), ctx.Body.VoterID, photo)
	if err != nil {
		switch {
		case errors.Is(err, biometric.ErrNoFaceDetected):
			apperrors.ClientError(ctx.Ctx, "no face detected in the enrollment photo", nil, nil)
		case errors.Is(err, biometric.ErrInvalidDescriptor):
			apperrors.ClientError(ctx.Ctx, "the extracted descriptor was malformed", nil, nil)
		case errors.Is(err, biometric.ErrExtractionUnavailable):
			apperrors.ExternalDependencyError(ctx.Ctx, "face engine", err)
		case errors.Is(err, enrollment.ErrStorageUnavailable):
			apperrors.StorageUnavailableError(ctx.Ctx, err)
		default:
			apperrors.FatalServerError(ctx.Ctx, err)
		}
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "voter descriptor enrolled", map[string]any{
		"voterID": ctx.Body.VoterID,
	}, nil, nil)
}

// EnrollmentStatus reports whether a voter has an enrolled descriptor
// without exposing the descriptor itself.
func EnrollmentStatus(ctx *interfaces.ApplicationContext[any]) {
	voterID := ctx.GetStringContextData("VoterID")
	if voterID == "" {
		apperrors.AuthenticationError(ctx.Ctx, "unauthorized access")
		return
	}

	_, err := EnrollmentService().EnrolledDescriptor(requestContext(ctx.Ctx), voterID)
	if err != nil {
		switch {
		case errors.Is(err, enrollment.ErrNotEnrolled):
			apperrors.CustomError(ctx.Ctx, http.StatusNotFound, "voter has no enrolled descriptor", &constants.VOTER_NOT_ENROLLED)
		case errors.Is(err, enrollment.ErrStorageUnavailable):
			apperrors.StorageUnavailableError(ctx.Ctx, err)
		default:
			apperrors.FatalServerError(ctx.Ctx, err)
		}
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "voter descriptor enrolled", map[string]any{
		"enrolled": true,
	}, nil, nil)
}
