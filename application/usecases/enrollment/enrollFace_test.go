package enrollment

import (
	"context"
	"errors"
	"testing"
	"time"

	"votegate.io/entities"
	"votegate.io/infrastructure/biometric"
	"votegate.io/infrastructure/biometric/types"
)

type extractorStub struct {
	extraction *types.Extraction
	err        error
	calls      int
}

func (stub *extractorStub) ExtractDescriptor(ctx context.Context, image []byte) (*types.Extraction, error) {
	stub.calls++
	return stub.extraction, stub.err
}

type descriptorStoreStub struct {
	records   map[string]entities.FaceDescriptor
	upsertErr error
}

func newDescriptorStoreStub() *descriptorStoreStub {
	return &descriptorStoreStub{records: map[string]entities.FaceDescriptor{}}
}

func (stub *descriptorStoreStub) Upsert(ctx context.Context, record entities.FaceDescriptor) error {
	if stub.upsertErr != nil {
		return stub.upsertErr
	}
	stub.records[record.VoterID] = record
	return nil
}

func (stub *descriptorStoreStub) FindByVoterID(ctx context.Context, voterID string) (*entities.FaceDescriptor, error) {
	record, ok := stub.records[voterID]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (stub *descriptorStoreStub) UpdateStatus(ctx context.Context, voterID string, status entities.VerificationStatus) error {
	record := stub.records[voterID]
	record.Status = status
	stub.records[voterID] = record
	return nil
}

type voterStoreStub struct {
	enrolled map[string]bool
}

func (stub *voterStoreStub) MarkEnrolled(ctx context.Context, voterID string) error {
	if stub.enrolled == nil {
		stub.enrolled = map[string]bool{}
	}
	stub.enrolled[voterID] = true
	return nil
}

func validExtraction() *types.Extraction {
	values := make([]float64, biometric.DescriptorLength)
	for i := range values {
		values[i] = 0.25
	}
	return &types.Extraction{Descriptor: values, Confidence: 0.97}
}

func newTestService(extractor *extractorStub, store *descriptorStoreStub, voters *voterStoreStub) *Service {
	return &Service{
		Extractor:         extractor,
		Store:             store,
		Voters:            voters,
		ExtractionTimeout: 2 * time.Second,
	}
}

func TestEnrollFaceStoresPendingDescriptor(t *testing.T) {
	store := newDescriptorStoreStub()
	voters := &voterStoreStub{}
	service := newTestService(&extractorStub{extraction: validExtraction()}, store, voters)

	if err := service.EnrollFace(context.Background(), "voter-1", []byte("photo")); err != nil {
		t.Fatalf("EnrollFace returned error: %v", err)
	}

	record, ok := store.records["voter-1"]
	if !ok {
		t.Fatal("descriptor record was not stored")
	}
	if len(record.Descriptor) != biometric.DescriptorLength {
		t.Errorf("stored descriptor length = %d, want %d", len(record.Descriptor), biometric.DescriptorLength)
	}
	if record.Status != entities.VerificationPending {
		t.Errorf("Status = %q, want pending", record.Status)
	}
	if record.Confidence != 0.97 {
		t.Errorf("Confidence = %v, want 0.97", record.Confidence)
	}
	if !voters.enrolled["voter-1"] {
		t.Error("voter must be flagged enrolled")
	}
}

func TestEnrollFaceIsIdempotent(t *testing.T) {
	store := newDescriptorStoreStub()
	service := newTestService(&extractorStub{extraction: validExtraction()}, store, &voterStoreStub{})

	if err := service.EnrollFace(context.Background(), "voter-1", []byte("photo")); err != nil {
		t.Fatalf("first EnrollFace returned error: %v", err)
	}
	first := store.records["voter-1"]

	if err := service.EnrollFace(context.Background(), "voter-1", []byte("photo")); err != nil {
		t.Fatalf("second EnrollFace returned error: %v", err)
	}
	second := store.records["voter-1"]

	if len(store.records) != 1 {
		t.Fatalf("record count = %d, want 1", len(store.records))
	}
	for i := range first.Descriptor {
		if first.Descriptor[i] != second.Descriptor[i] {
			t.Fatalf("re-enrollment with the same photo must store an equal descriptor (index %d)", i)
		}
	}
}

func TestEnrollFaceEmptyPhoto(t *testing.T) {
	extractor := &extractorStub{extraction: validExtraction()}
	service := newTestService(extractor, newDescriptorStoreStub(), &voterStoreStub{})

	err := service.EnrollFace(context.Background(), "voter-1", nil)
	if !errors.Is(err, biometric.ErrNoFaceDetected) {
		t.Errorf("expected ErrNoFaceDetected, got %v", err)
	}
	if extractor.calls != 0 {
		t.Error("extractor must not run for an empty photo")
	}
}

func TestEnrollFaceRejectsMalformedDescriptor(t *testing.T) {
	store := newDescriptorStoreStub()
	service := newTestService(&extractorStub{extraction: &types.Extraction{
		Descriptor: []float64{0.1, 0.2},
		Confidence: 0.9,
	}}, store, &voterStoreStub{})

	err := service.EnrollFace(context.Background(), "voter-1", []byte("photo"))
	if !errors.Is(err, biometric.ErrInvalidDescriptor) {
		t.Errorf("expected ErrInvalidDescriptor, got %v", err)
	}
	if len(store.records) != 0 {
		t.Error("a malformed descriptor must never be persisted")
	}
}

func TestEnrollFaceStorageFailure(t *testing.T) {
	store := newDescriptorStoreStub()
	store.upsertErr = errors.New("connection reset")
	service := newTestService(&extractorStub{extraction: validExtraction()}, store, &voterStoreStub{})

	err := service.EnrollFace(context.Background(), "voter-1", []byte("photo"))
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestEnrolledDescriptorNotEnrolled(t *testing.T) {
	service := newTestService(&extractorStub{extraction: validExtraction()}, newDescriptorStoreStub(), &voterStoreStub{})

	_, err := service.EnrolledDescriptor(context.Background(), "ghost")
	if !errors.Is(err, ErrNotEnrolled) {
		t.Errorf("expected ErrNotEnrolled, got %v", err)
	}
}

func TestEnrolledDescriptorRoundTrip(t *testing.T) {
	store := newDescriptorStoreStub()
	service := newTestService(&extractorStub{extraction: validExtraction()}, store, &voterStoreStub{})

	if err := service.EnrollFace(context.Background(), "voter-1", []byte("photo")); err != nil {
		t.Fatalf("EnrollFace returned error: %v", err)
	}

	descriptor, err := service.EnrolledDescriptor(context.Background(), "voter-1")
	if err != nil {
		t.Fatalf("EnrolledDescriptor returned error: %v", err)
	}
	if descriptor[0] != 0.25 {
		t.Errorf("descriptor[0] = %v, want 0.25", descriptor[0])
	}
}
