package ballot

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"votegate.io/application/usecases/token"
	"votegate.io/entities"
)

type tokensStub struct {
	record   *entities.SessionToken
	consumed bool
}

func (stub *tokensStub) ConsumeForVote(ctx context.Context, secret string) (*entities.SessionToken, error) {
	if stub.record == nil {
		return nil, token.ErrTokenNotFound
	}
	if stub.consumed || stub.record.Used {
		return nil, token.ErrTokenAlreadyUsed
	}
	if stub.record.Stage != entities.StageFaceVerified {
		return nil, token.ErrStageNotSatisfied
	}
	stub.consumed = true
	spent := *stub.record
	spent.Used = true
	return &spent, nil
}

func (stub *tokensStub) Lookup(ctx context.Context, secret string) (*entities.SessionToken, error) {
	if stub.record == nil {
		return nil, token.ErrTokenNotFound
	}
	found := *stub.record
	found.Used = found.Used || stub.consumed
	return &found, nil
}

type storeStub struct {
	byToken map[string]entities.Ballot
	byVoter map[string]string
	nextErr error
	inserts int
}

func newStoreStub() *storeStub {
	return &storeStub{byToken: map[string]entities.Ballot{}, byVoter: map[string]string{}}
}

func (stub *storeStub) Insert(ctx context.Context, record entities.Ballot) error {
	stub.inserts++
	if stub.nextErr != nil {
		err := stub.nextErr
		stub.nextErr = nil
		return err
	}
	if _, dup := stub.byToken[record.TokenID]; dup {
		return ErrDuplicate
	}
	if _, dup := stub.byVoter[record.VoterID]; dup {
		return ErrDuplicate
	}
	stub.byToken[record.TokenID] = record
	stub.byVoter[record.VoterID] = record.TokenID
	return nil
}

func (stub *storeStub) FindByTokenID(ctx context.Context, tokenID string) (*entities.Ballot, error) {
	record, ok := stub.byToken[tokenID]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func faceVerifiedToken(id string) *entities.SessionToken {
	return &entities.SessionToken{
		ID:        id,
		VoterID:   "voter-1",
		Stage:     entities.StageFaceVerified,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
}

func newTestService(tokens *tokensStub, store *storeStub) *Service {
	receipts := 0
	return &Service{
		Tokens: tokens,
		Store:  store,
		NewReceipt: func() string {
			receipts++
			return fmt.Sprintf("receipt-%d", receipts)
		},
	}
}

func TestRecordSpendsTokenAndStoresBallot(t *testing.T) {
	store := newStoreStub()
	service := newTestService(&tokensStub{record: faceVerifiedToken("tok-1")}, store)

	outcome, err := service.Record(context.Background(), "secret", "choice-a")
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if outcome.Resumed {
		t.Error("a first submission must not report Resumed")
	}
	if outcome.Receipt == "" {
		t.Error("expected a receipt")
	}
	record, ok := store.byToken["tok-1"]
	if !ok {
		t.Fatal("ballot was not stored")
	}
	if record.VoterID != "voter-1" || record.Selection != "choice-a" {
		t.Errorf("stored ballot = %+v", record)
	}
}

func TestRecordRetryCompletesAfterInsertFailure(t *testing.T) {
	tokens := &tokensStub{record: faceVerifiedToken("tok-1")}
	store := newStoreStub()
	store.nextErr = errors.New("connection reset")
	service := newTestService(tokens, store)

	_, err := service.Record(context.Background(), "secret", "choice-a")
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if !tokens.consumed {
		t.Fatal("the token is spent before the insert; the failure scenario needs a consumed token")
	}

	// the voter resubmits the same token; the recording must complete
	// instead of reporting a false duplicate
	outcome, err := service.Record(context.Background(), "secret", "choice-a")
	if err != nil {
		t.Fatalf("retry returned error: %v", err)
	}
	if !outcome.Resumed {
		t.Error("retry must report Resumed")
	}
	if _, ok := store.byToken["tok-1"]; !ok {
		t.Fatal("retry must record the ballot")
	}
	if len(store.byToken) != 1 {
		t.Errorf("ballot count = %d, want 1", len(store.byToken))
	}
}

func TestRecordReplaysReceiptAfterSuccess(t *testing.T) {
	store := newStoreStub()
	service := newTestService(&tokensStub{record: faceVerifiedToken("tok-1")}, store)

	first, err := service.Record(context.Background(), "secret", "choice-a")
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	inserts := store.inserts

	second, err := service.Record(context.Background(), "secret", "choice-a")
	if err != nil {
		t.Fatalf("resubmission returned error: %v", err)
	}
	if !second.Resumed {
		t.Error("resubmission must report Resumed")
	}
	if second.Receipt != first.Receipt {
		t.Errorf("resubmission receipt = %q, want the original %q", second.Receipt, first.Receipt)
	}
	if store.inserts != inserts {
		t.Error("resubmission must not insert a second ballot")
	}
}

func TestRecordRejectsSpentCredentialToken(t *testing.T) {
	spent := faceVerifiedToken("tok-1")
	spent.Stage = entities.StageCredential
	spent.Used = true
	store := newStoreStub()
	service := newTestService(&tokensStub{record: spent}, store)

	_, err := service.Record(context.Background(), "secret", "choice-a")
	if !errors.Is(err, token.ErrTokenAlreadyUsed) {
		t.Fatalf("expected ErrTokenAlreadyUsed, got %v", err)
	}
	if len(store.byToken) != 0 {
		t.Error("a spent credential token must never record a ballot")
	}
}

func TestRecordRejectsSecondTokenForVoter(t *testing.T) {
	store := newStoreStub()
	store.byToken["tok-0"] = entities.Ballot{VoterID: "voter-1", TokenID: "tok-0", Receipt: "receipt-0"}
	store.byVoter["voter-1"] = "tok-0"
	service := newTestService(&tokensStub{record: faceVerifiedToken("tok-1")}, store)

	_, err := service.Record(context.Background(), "secret", "choice-a")
	if !errors.Is(err, ErrAlreadyRecorded) {
		t.Fatalf("expected ErrAlreadyRecorded, got %v", err)
	}
}

func TestRecordUnknownToken(t *testing.T) {
	service := newTestService(&tokensStub{}, newStoreStub())

	_, err := service.Record(context.Background(), "secret", "choice-a")
	if !errors.Is(err, token.ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}
