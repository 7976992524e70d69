package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"votegate.io/entities"
	"votegate.io/infrastructure/cryptography"
)

var (
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenAlreadyUsed   = errors.New("token already used")
	ErrStageNotSatisfied  = errors.New("token stage does not authorize this operation")
	ErrStorageUnavailable = errors.New("token store unavailable")
)

// Store is the durable keyed token store. ConsumeIfUsable must be a
// storage-level atomic conditional update: match on hash + unused +
// unexpired + stage and flip used in the same operation. Two concurrent
// consumers of one token must never both succeed.
type Store interface {
	// ReplaceForVoter overwrites any existing token for the voter,
	// enforcing the at-most-one-active-token invariant.
	ReplaceForVoter(ctx context.Context, token entities.SessionToken) error
	FindByHash(ctx context.Context, hash string) (*entities.SessionToken, error)
	// ConsumeIfUsable returns the consumed token, or nil when no token
	// matched the usable condition.
	ConsumeIfUsable(ctx context.Context, hash string, stage entities.TokenStage, now time.Time) (*entities.SessionToken, error)
}

// Manager owns the one-time-use session token (OTU) lifecycle: issue,
// validate, rotate at stage boundaries and consume terminally. Secrets are
// generated here, server side, and only their hash is ever stored.
type Manager struct {
	Store Store
	TTL   time.Duration

	// Now is swappable for tests; zero value means time.Now
	Now func() time.Time
}

func (manager *Manager) now() time.Time {
	if manager.Now != nil {
		return manager.Now()
	}
	return time.Now()
}

type IssuedToken struct {
	Secret    string
	Stage     entities.TokenStage
	ExpiresAt time.Time
}

// Issue mints a fresh token for the voter at the given stage. Any
// previously active token for the voter is superseded by the overwrite.
func (manager *Manager) Issue(ctx context.Context, voterID string, stage entities.TokenStage) (*IssuedToken, error) {
	secret, err := cryptography.GenerateSecret(32)
	if err != nil {
		return nil, err
	}
	expiresAt := manager.now().Add(manager.TTL)

	err = manager.Store.ReplaceForVoter(ctx, entities.SessionToken{
		VoterID:   voterID,
		TokenHash: cryptography.HashToken(secret),
		Stage:     stage,
		ExpiresAt: expiresAt,
		Used:      false,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return &IssuedToken{Secret: secret, Stage: stage, ExpiresAt: expiresAt}, nil
}

// Validate is the read-only check: it resolves the secret to its token
// and reports why it is unusable, without consuming it.
func (manager *Manager) Validate(ctx context.Context, secret string) (*entities.SessionToken, error) {
	record, err := manager.Store.FindByHash(ctx, cryptography.HashToken(secret))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if record == nil {
		return nil, ErrTokenNotFound
	}
	if record.Used {
		return nil, ErrTokenAlreadyUsed
	}
	if manager.now().After(record.ExpiresAt) {
		return nil, ErrTokenExpired
	}
	return record, nil
}

// Lookup resolves a secret to its stored token regardless of whether it
// has been spent. Callers that need the usable-only view use Validate.
func (manager *Manager) Lookup(ctx context.Context, secret string) (*entities.SessionToken, error) {
	record, err := manager.Store.FindByHash(ctx, cryptography.HashToken(secret))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if record == nil {
		return nil, ErrTokenNotFound
	}
	return record, nil
}

// Rotate consumes a token at fromStage and issues a fresh one at toStage
// with a fresh TTL for the same voter. The consume is conditional, so a
// replayed earlier-stage token cannot rotate twice. If issuing the
// replacement fails after the consume, the voter restarts from
// authentication; progression is never duplicated.
func (manager *Manager) Rotate(ctx context.Context, secret string, fromStage entities.TokenStage, toStage entities.TokenStage) (*IssuedToken, error) {
	consumed, err := manager.consume(ctx, secret, fromStage)
	if err != nil {
		return nil, err
	}
	return manager.Issue(ctx, consumed.VoterID, toStage)
}

// ConsumeForVote terminally spends a face_verified token. Exactly one of
// any number of concurrent calls with the same token succeeds.
func (manager *Manager) ConsumeForVote(ctx context.Context, secret string) (*entities.SessionToken, error) {
	return manager.consume(ctx, secret, entities.StageFaceVerified)
}

func (manager *Manager) consume(ctx context.Context, secret string, stage entities.TokenStage) (*entities.SessionToken, error) {
	hash := cryptography.HashToken(secret)
	consumed, err := manager.Store.ConsumeIfUsable(ctx, hash, stage, manager.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if consumed != nil {
		return consumed, nil
	}

	// nothing matched the usable condition; classify for the caller
	record, err := manager.Store.FindByHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	switch {
	case record == nil:
		return nil, ErrTokenNotFound
	case record.Used:
		return nil, ErrTokenAlreadyUsed
	case manager.now().After(record.ExpiresAt):
		return nil, ErrTokenExpired
	default:
		return nil, ErrStageNotSatisfied
	}
}
