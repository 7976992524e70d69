package controller

import (
	"context"
	"os"
	"sync"

	"github.com/google/uuid"

	"votegate.io/application/constants"
	"votegate.io/application/repository"
	"votegate.io/application/usecases/ballot"
	"votegate.io/application/usecases/enrollment"
	"votegate.io/application/usecases/token"
	"votegate.io/application/usecases/verification"
	"votegate.io/application/utils"
	"votegate.io/infrastructure/biometric"
)

// requestContext recovers the request-scoped context from the transport
// handle. gin's context satisfies context.Context directly.
func requestContext(ctx any) context.Context {
	if c, ok := ctx.(context.Context); ok {
		return c
	}
	return context.Background()
}

var tokenManagerOnce = sync.Once{}
var tokenManager *token.Manager

func TokenManager() *token.Manager {
	tokenManagerOnce.Do(func() {
		tokenManager = &token.Manager{
			Store: repository.SessionTokenStore(),
			TTL:   constants.OTUTimeToLive(),
		}
	})
	return tokenManager
}

var enrollmentServiceOnce = sync.Once{}
var enrollmentService *enrollment.Service

func EnrollmentService() *enrollment.Service {
	enrollmentServiceOnce.Do(func() {
		enrollmentService = &enrollment.Service{
			Extractor:         biometric.ExtractorService,
			Store:             repository.DescriptorStore(),
			Voters:            repository.VoterStore(),
			ExtractionTimeout: constants.ExtractionTimeout(),
		}
	})
	return enrollmentService
}

var ballotServiceOnce = sync.Once{}
var ballotService *ballot.Service

func BallotService() *ballot.Service {
	ballotServiceOnce.Do(func() {
		ballotService = &ballot.Service{
			Tokens:     TokenManager(),
			Store:      repository.BallotStore(),
			NewReceipt: uuid.NewString,
		}
	})
	return ballotService
}

var verificationGateOnce = sync.Once{}
var verificationGate *verification.Gate

func VerificationGate() *verification.Gate {
	verificationGateOnce.Do(func() {
		verificationGate = &verification.Gate{
			Descriptors:    repository.DescriptorStore(),
			Tokens:         TokenManager(),
			Attempts:       repository.AttemptStore(),
			MatchThreshold: constants.FaceMatchThreshold(),
			MaxAttempts:    constants.MaxVerificationAttempts(),
			Cooldown:       constants.VerificationCooldown(),
			LivenessConfig: biometric.LivenessConfig{
				MinBlinkCount:      utils.ParseIntWithDefault(os.Getenv("MIN_BLINK_COUNT"), 2),
				EyeClosedThreshold: utils.ParseFloatWithDefault(os.Getenv("EYE_CLOSED_THRESHOLD"), 0.21),
				DebounceFrames:     utils.ParseIntWithDefault(os.Getenv("BLINK_DEBOUNCE_FRAMES"), 3),
				MovementMinPixels:  utils.ParseFloatWithDefault(os.Getenv("HEAD_MOVEMENT_MIN_PIXELS"), 8),
			},
		}
	})
	return verificationGate
}
