package verification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"votegate.io/application/usecases/token"
	"votegate.io/entities"
	"votegate.io/infrastructure/biometric"
)

// memoryTokenStore gives the flow test a real token manager backed by the
// same conditional-update contract as the mongo store.
type memoryTokenStore struct {
	mu      sync.Mutex
	byVoter map[string]*entities.SessionToken
}

func (store *memoryTokenStore) ReplaceForVoter(ctx context.Context, record entities.SessionToken) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	copied := record
	store.byVoter[record.VoterID] = &copied
	return nil
}

func (store *memoryTokenStore) FindByHash(ctx context.Context, hash string) (*entities.SessionToken, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, record := range store.byVoter {
		if record.TokenHash == hash {
			copied := *record
			return &copied, nil
		}
	}
	return nil, nil
}

func (store *memoryTokenStore) ConsumeIfUsable(ctx context.Context, hash string, stage entities.TokenStage, now time.Time) (*entities.SessionToken, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, record := range store.byVoter {
		if record.TokenHash == hash && !record.Used && record.Stage == stage && record.ExpiresAt.After(now) {
			record.Used = true
			copied := *record
			return &copied, nil
		}
	}
	return nil, nil
}

// Full session walk-through: credential token issued after OTP, live
// capture matches the enrolled descriptor with liveness satisfied, the
// token rotates to the ballot stage, the ballot consume succeeds once and
// only once.
func TestVerificationToVoteFlow(t *testing.T) {
	manager := &token.Manager{
		Store: &memoryTokenStore{byVoter: map[string]*entities.SessionToken{}},
		TTL:   10 * time.Minute,
	}

	enrolled := descriptorWithValue(0.2)
	descriptors := &descriptorStoreStub{record: &entities.FaceDescriptor{
		VoterID:    "voter-1",
		Descriptor: enrolled,
		Confidence: 0.95,
	}}

	gate := &Gate{
		Descriptors:    descriptors,
		Tokens:         manager,
		Attempts:       newAttemptStoreStub(),
		MatchThreshold: 0.6,
		MaxAttempts:    3,
		Cooldown:       5 * time.Minute,
		LivenessConfig: biometric.DefaultLivenessConfig(),
	}

	// OTP success issues the credential-stage token
	issued, err := manager.Issue(context.Background(), "voter-1", entities.StageCredential)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// live capture at distance ~0.3 from the enrolled descriptor, within
	// the 0.6 threshold
	liveValues := descriptorWithValue(0.2)
	liveValues[0] += 0.3
	live, err := biometric.ParseDescriptor(liveValues)
	if err != nil {
		t.Fatalf("ParseDescriptor returned error: %v", err)
	}

	result, err := gate.SubmitLiveCapture(context.Background(), issued.Secret, live, liveFrames())
	if err != nil {
		t.Fatalf("SubmitLiveCapture returned error: %v", err)
	}
	if result.State != StateMatched {
		t.Fatalf("State = %q, want Matched", result.State)
	}
	if result.RotatedToken == nil || result.RotatedToken.Stage != entities.StageFaceVerified {
		t.Fatal("matched capture must rotate the token to the ballot stage")
	}

	// the superseded credential token cannot re-enter the gate
	if _, err := gate.SubmitLiveCapture(context.Background(), issued.Secret, live, liveFrames()); err == nil {
		t.Error("the consumed credential token must not replay into the gate")
	}

	// ballot submission consumes the rotated token terminally
	consumed, err := manager.ConsumeForVote(context.Background(), result.RotatedToken.Secret)
	if err != nil {
		t.Fatalf("ConsumeForVote returned error: %v", err)
	}
	if consumed.VoterID != "voter-1" {
		t.Errorf("consumed VoterID = %q, want voter-1", consumed.VoterID)
	}

	// replaying the spent token fails
	_, err = manager.ConsumeForVote(context.Background(), result.RotatedToken.Secret)
	if !errors.Is(err, token.ErrTokenAlreadyUsed) {
		t.Errorf("expected ErrTokenAlreadyUsed on replay, got %v", err)
	}
}
