package repository

import (
	"context"
	"fmt"
	"time"

	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"votegate.io/application/usecases/ballot"
	"votegate.io/entities"
	"votegate.io/infrastructure/database/repository/cache"
)

// Adapters binding the usecase store interfaces to the mongo repositories
// and the redis cache. Only these adapters touch the underlying models for
// their concern: descriptor bytes are written here and nowhere else, and
// the token used/expiry fields are written only through the token store.

type descriptorStore struct{}

func DescriptorStore() *descriptorStore {
	return &descriptorStore{}
}

func (store *descriptorStore) Upsert(ctx context.Context, record entities.FaceDescriptor) error {
	return FaceDescriptorRepo().UpsertByFilter(ctx, map[string]interface{}{
		"voterID": record.VoterID,
	}, record)
}

func (store *descriptorStore) FindByVoterID(ctx context.Context, voterID string) (*entities.FaceDescriptor, error) {
	return FaceDescriptorRepo().FindOneByFilter(map[string]interface{}{
		"voterID": voterID,
	})
}

func (store *descriptorStore) UpdateStatus(ctx context.Context, voterID string, status entities.VerificationStatus) error {
	_, err := FaceDescriptorRepo().UpdatePartialByFilter(ctx, map[string]interface{}{
		"voterID": voterID,
	}, map[string]interface{}{
		"status":    status,
		"updatedAt": time.Now(),
	})
	return err
}

type voterStore struct{}

func VoterStore() *voterStore {
	return &voterStore{}
}

func (store *voterStore) MarkEnrolled(ctx context.Context, voterID string) error {
	_, err := VoterRepo().UpdatePartialByFilter(ctx, map[string]interface{}{
		"_id": voterID,
	}, map[string]interface{}{
		"enrolled":  true,
		"updatedAt": time.Now(),
	})
	return err
}

type sessionTokenStore struct{}

func SessionTokenStore() *sessionTokenStore {
	return &sessionTokenStore{}
}

func (store *sessionTokenStore) ReplaceForVoter(ctx context.Context, record entities.SessionToken) error {
	return SessionTokenRepo().UpsertByFilter(ctx, map[string]interface{}{
		"voterID": record.VoterID,
	}, record)
}

func (store *sessionTokenStore) FindByHash(ctx context.Context, hash string) (*entities.SessionToken, error) {
	return SessionTokenRepo().FindOneByFilter(map[string]interface{}{
		"tokenHash": hash,
	})
}

// ConsumeIfUsable flips used in the same storage operation that matched
// used=false. This is the guard against two concurrent submissions both
// spending one token.
func (store *sessionTokenStore) ConsumeIfUsable(ctx context.Context, hash string, stage entities.TokenStage, now time.Time) (*entities.SessionToken, error) {
	consumed, err := SessionTokenRepo().FindOneAndUpdate(ctx, map[string]interface{}{
		"tokenHash": hash,
		"used":      false,
		"stage":     stage,
		"expiresAt": map[string]interface{}{"$gt": now},
	}, map[string]interface{}{
		"used":      true,
		"updatedAt": now,
	})
	if err != nil {
		return nil, err
	}
	if consumed == nil {
		return nil, nil
	}
	consumed.Used = true
	return consumed, nil
}

type ballotStore struct{}

func BallotStore() *ballotStore {
	return &ballotStore{}
}

// Insert translates a unique-index collision (voterID or tokenID) into
// the ballot package's duplicate sentinel so the recording service can
// distinguish a replay from a storage outage.
func (store *ballotStore) Insert(ctx context.Context, record entities.Ballot) error {
	_, err := BallotRepo().CreateOne(ctx, record)
	if err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %v", ballot.ErrDuplicate, err)
		}
		return err
	}
	return nil
}

func (store *ballotStore) FindByTokenID(ctx context.Context, tokenID string) (*entities.Ballot, error) {
	return BallotRepo().FindOneByFilter(map[string]interface{}{
		"tokenID": tokenID,
	})
}

type attemptStore struct{}

func AttemptStore() *attemptStore {
	return &attemptStore{}
}

func attemptKey(voterID string) string {
	return fmt.Sprintf("%s-verification-attempts", voterID)
}

func (store *attemptStore) Increment(voterID string, window time.Duration) int64 {
	return cache.Cache.IncrementField(attemptKey(voterID), window)
}

func (store *attemptStore) Count(voterID string) int64 {
	raw := cache.Cache.FindOne(attemptKey(voterID))
	if raw == nil {
		return 0
	}
	var count int64
	fmt.Sscanf(*raw, "%d", &count)
	return count
}

func (store *attemptStore) Remaining(voterID string) time.Duration {
	return cache.Cache.TimeToLive(attemptKey(voterID))
}
