package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"votegate.io/application/usecases/token"
	"votegate.io/entities"
	"votegate.io/infrastructure/biometric"
	"votegate.io/infrastructure/logger"
)

var (
	ErrNotEnrolled        = errors.New("voter has no enrolled descriptor")
	ErrStorageUnavailable = errors.New("verification store unavailable")
)

// Gate states. A submission ends in exactly one of these.
type State string

const (
	StateMatched     State = "Matched"
	StateNotMatched  State = "NotMatched"
	StateRateLimited State = "RateLimited"
)

// DescriptorStore is the slice of descriptor persistence the gate needs.
type DescriptorStore interface {
	FindByVoterID(ctx context.Context, voterID string) (*entities.FaceDescriptor, error)
	UpdateStatus(ctx context.Context, voterID string, status entities.VerificationStatus) error
}

// TokenGateway is the token manager surface the gate depends on.
type TokenGateway interface {
	Validate(ctx context.Context, secret string) (*entities.SessionToken, error)
	Rotate(ctx context.Context, secret string, fromStage entities.TokenStage, toStage entities.TokenStage) (*token.IssuedToken, error)
}

// AttemptStore tracks failed attempts per voter inside a rolling cooldown
// window.
type AttemptStore interface {
	// Increment bumps the counter, starting the window on first failure,
	// and returns the new count.
	Increment(voterID string, window time.Duration) int64
	// Count reads the counter without bumping it.
	Count(voterID string) int64
	// Remaining reports how long until the window resets.
	Remaining(voterID string) time.Duration
}

type Result struct {
	State    State
	Distance float64
	// present only on Matched: the rotated token for the ballot stage
	RotatedToken *token.IssuedToken
	// present only on RateLimited
	RetryAfter   time.Duration
	AttemptsLeft int
}

// Gate orchestrates one live-capture verification attempt: token
// precondition, rate limit, enrollment lookup, liveness, then the match
// decision, persisting the outcome.
type Gate struct {
	Descriptors DescriptorStore
	Tokens      TokenGateway
	Attempts    AttemptStore

	MatchThreshold float64
	MaxAttempts    int
	Cooldown       time.Duration
	LivenessConfig biometric.LivenessConfig
}

// SubmitLiveCapture runs the gate for one capture. The live descriptor is
// ephemeral: it exists only for the scope of this call and is never
// persisted. Token errors and ErrNotEnrolled surface as errors; match
// outcomes and rate limiting surface as Result states.
func (gate *Gate) SubmitLiveCapture(ctx context.Context, tokenSecret string, live biometric.Descriptor, frames []biometric.FrameSignal) (*Result, error) {
	// verification must never run for an unauthenticated identity
	session, err := gate.Tokens.Validate(ctx, tokenSecret)
	if err != nil {
		return nil, err
	}

	// a face_verified token replayed here would rotate endlessly; only the
	// credential stage authorizes a capture
	if session.Stage != entities.StageCredential {
		return nil, fmt.Errorf("%w: stage %q does not authorize face verification", token.ErrStageNotSatisfied, session.Stage)
	}

	// cooldown check precedes everything expensive; the matcher must not
	// run for a rate-limited voter
	if gate.Attempts.Count(session.VoterID) >= int64(gate.MaxAttempts) {
		return &Result{
			State:      StateRateLimited,
			RetryAfter: gate.Attempts.Remaining(session.VoterID),
		}, nil
	}

	enrolled, err := gate.Descriptors.FindByVoterID(ctx, session.VoterID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if enrolled == nil {
		return nil, ErrNotEnrolled
	}
	enrolledDescriptor, err := biometric.ParseDescriptor(enrolled.Descriptor)
	if err != nil {
		return nil, err
	}

	// camera-denied sessions produce zero frames and must surface as their
	// own error, not as a failed match
	evaluator := biometric.NewLivenessEvaluator(gate.LivenessConfig)
	for _, frame := range frames {
		evaluator.Observe(frame)
	}
	isLive, err := evaluator.IsLive()
	if err != nil {
		return nil, err
	}

	match, err := biometric.Match(enrolledDescriptor, live, gate.MatchThreshold)
	if err != nil {
		return nil, err
	}

	// a confident descriptor match without liveness evidence is treated as
	// no match
	if !match.IsMatch || !isLive {
		return gate.concludeNotMatched(ctx, session.VoterID, match.Distance)
	}
	return gate.concludeMatched(ctx, tokenSecret, session.VoterID, match.Distance)
}

func (gate *Gate) concludeNotMatched(ctx context.Context, voterID string, distance float64) (*Result, error) {
	count := gate.Attempts.Increment(voterID, gate.Cooldown)
	if err := gate.Descriptors.UpdateStatus(ctx, voterID, entities.VerificationFailed); err != nil {
		logger.Error("failed to persist verification status", logger.LoggerOptions{
			Key:  "voterID",
			Data: voterID,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}

	attemptsLeft := gate.MaxAttempts - int(count)
	if attemptsLeft < 0 {
		attemptsLeft = 0
	}
	return &Result{State: StateNotMatched, Distance: distance, AttemptsLeft: attemptsLeft}, nil
}

func (gate *Gate) concludeMatched(ctx context.Context, tokenSecret string, voterID string, distance float64) (*Result, error) {
	// rotation consumes the credential-stage token atomically, so a
	// concurrent duplicate submission cannot mint two ballot-stage tokens
	rotated, err := gate.Tokens.Rotate(ctx, tokenSecret, entities.StageCredential, entities.StageFaceVerified)
	if err != nil {
		return nil, err
	}
	if err := gate.Descriptors.UpdateStatus(ctx, voterID, entities.VerificationVerified); err != nil {
		logger.Error("failed to persist verification status", logger.LoggerOptions{
			Key:  "voterID",
			Data: voterID,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
	return &Result{State: StateMatched, Distance: distance, RotatedToken: rotated}, nil
}
