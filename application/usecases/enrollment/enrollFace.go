package enrollment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"votegate.io/entities"
	"votegate.io/infrastructure/biometric"
	"votegate.io/infrastructure/biometric/types"
	"votegate.io/infrastructure/logger"
)

var (
	ErrNotEnrolled        = errors.New("voter has no enrolled descriptor")
	ErrStorageUnavailable = errors.New("descriptor store unavailable")
)

// DescriptorStore persists at most one descriptor record per voter.
type DescriptorStore interface {
	Upsert(ctx context.Context, record entities.FaceDescriptor) error
	FindByVoterID(ctx context.Context, voterID string) (*entities.FaceDescriptor, error)
	UpdateStatus(ctx context.Context, voterID string, status entities.VerificationStatus) error
}

// VoterStore is the slice of voter persistence enrollment needs.
type VoterStore interface {
	MarkEnrolled(ctx context.Context, voterID string) error
}

// Service extracts a descriptor from an enrollment photo and persists it.
// Re-running enrollment with the same photo overwrites the record with an
// equal descriptor, so the operation is idempotent.
type Service struct {
	Extractor types.FaceExtractorType
	Store     DescriptorStore
	Voters    VoterStore
	// upper bound on descriptor extraction; expired attempts surface as
	// errors instead of silently retrying
	ExtractionTimeout time.Duration
}

func (service *Service) EnrollFace(ctx context.Context, voterID string, photo []byte) error {
	if len(photo) == 0 {
		return biometric.ErrNoFaceDetected
	}

	extractionCtx, cancel := context.WithTimeout(ctx, service.ExtractionTimeout)
	defer cancel()

	extraction, err := service.Extractor.ExtractDescriptor(extractionCtx, photo)
	if err != nil {
		return err
	}

	descriptor, err := biometric.ParseDescriptor(extraction.Descriptor)
	if err != nil {
		// never persist a malformed descriptor
		return err
	}

	err = service.Store.Upsert(ctx, entities.FaceDescriptor{
		VoterID:    voterID,
		Descriptor: descriptor.Slice(),
		Confidence: extraction.Confidence,
		Status:     entities.VerificationPending,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if err := service.Voters.MarkEnrolled(ctx, voterID); err != nil {
		logger.Warning("descriptor stored but voter enrollment flag not updated", logger.LoggerOptions{
			Key:  "voterID",
			Data: voterID,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}

	logger.Info("voter descriptor enrolled", logger.LoggerOptions{
		Key:  "voterID",
		Data: voterID,
	})
	return nil
}

// EnrolledDescriptor loads the stored descriptor for a voter, failing fast
// with ErrNotEnrolled when none exists so verification never runs against
// a missing record.
func (service *Service) EnrolledDescriptor(ctx context.Context, voterID string) (biometric.Descriptor, error) {
	record, err := service.Store.FindByVoterID(ctx, voterID)
	if err != nil {
		return biometric.Descriptor{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if record == nil {
		return biometric.Descriptor{}, ErrNotEnrolled
	}
	return biometric.ParseDescriptor(record.Descriptor)
}
