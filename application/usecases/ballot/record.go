package ballot

import (
	"context"
	"errors"
	"fmt"

	"votegate.io/application/usecases/token"
	"votegate.io/entities"
)

var (
	// ErrAlreadyRecorded means this voter already has a ballot from a
	// different token. A retry of the same token replays its receipt
	// instead.
	ErrAlreadyRecorded = errors.New("ballot already recorded for this voter")
	// ErrDuplicate is what the store reports when an insert collides with
	// the unique voterID or tokenID index.
	ErrDuplicate          = errors.New("duplicate ballot")
	ErrStorageUnavailable = errors.New("ballot store unavailable")
)

// Store is the durable ballot record. Insert must surface ErrDuplicate on
// a unique-index collision so the service can tell a replay apart from a
// second vote.
type Store interface {
	Insert(ctx context.Context, record entities.Ballot) error
	FindByTokenID(ctx context.Context, tokenID string) (*entities.Ballot, error)
}

// Tokens is the slice of the token manager this service needs: the
// terminal consume, and the spent-token lookup that anchors the resume
// path.
type Tokens interface {
	ConsumeForVote(ctx context.Context, secret string) (*entities.SessionToken, error)
	Lookup(ctx context.Context, secret string) (*entities.SessionToken, error)
}

// Service records a ballot against a face-verified session token. The
// consume and the insert are two writes, so the service is built to be
// retried: if the insert fails after the token is spent, a resubmission
// of the same token finishes the recording instead of stranding the
// voter, and a resubmission after success replays the original receipt.
type Service struct {
	Tokens     Tokens
	Store      Store
	NewReceipt func() string
}

type Outcome struct {
	Receipt string
	// Resumed reports that this call completed or replayed an earlier
	// submission rather than spending the token itself.
	Resumed bool
}

func (service *Service) Record(ctx context.Context, secret string, selection string) (*Outcome, error) {
	consumed, err := service.Tokens.ConsumeForVote(ctx, secret)
	if err != nil {
		if errors.Is(err, token.ErrTokenAlreadyUsed) {
			return service.resume(ctx, secret, selection)
		}
		return nil, err
	}
	return service.insert(ctx, consumed, selection, false)
}

// resume handles a token that was already spent. Only a face_verified
// token can have been spent by a ballot submission; anything else is a
// replay of an earlier-stage token and stays rejected.
func (service *Service) resume(ctx context.Context, secret string, selection string) (*Outcome, error) {
	record, err := service.Tokens.Lookup(ctx, secret)
	if err != nil {
		return nil, err
	}
	if record.Stage != entities.StageFaceVerified {
		return nil, token.ErrTokenAlreadyUsed
	}

	existing, err := service.Store.FindByTokenID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if existing != nil {
		return &Outcome{Receipt: existing.Receipt, Resumed: true}, nil
	}
	return service.insert(ctx, record, selection, true)
}

func (service *Service) insert(ctx context.Context, record *entities.SessionToken, selection string, resumed bool) (*Outcome, error) {
	receipt := service.NewReceipt()
	err := service.Store.Insert(ctx, entities.Ballot{
		VoterID:   record.VoterID,
		Selection: selection,
		TokenID:   record.ID,
		Receipt:   receipt,
	})
	if err == nil {
		return &Outcome{Receipt: receipt, Resumed: resumed}, nil
	}
	if !errors.Is(err, ErrDuplicate) {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	// two racing submissions of one token: the loser replays the winner's
	// receipt
	existing, findErr := service.Store.FindByTokenID(ctx, record.ID)
	if findErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, findErr)
	}
	if existing != nil {
		return &Outcome{Receipt: existing.Receipt, Resumed: true}, nil
	}
	// the collision was on voterID: this voter voted with another token
	return nil, ErrAlreadyRecorded
}
