package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"votegate.io/entities"
)

// Overwrites of per-voter records (descriptors, session tokens) must never
// try to rewrite the matched document's _id: ParseModel mints a fresh ULID
// for every zero-ID model, and mongo rejects an update that changes _id on
// an existing document. The upsert therefore has to route identity fields
// through $setOnInsert only.

func TestUpsertUpdateKeepsIdentityOutOfSet(t *testing.T) {
	parsed := entities.SessionToken{
		VoterID:   "voter-1",
		TokenHash: "abc123",
		Stage:     entities.StageCredential,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}.ParseModel()

	update, err := upsertUpdate(parsed)
	if err != nil {
		t.Fatalf("upsertUpdate returned error: %v", err)
	}

	set, ok := update["$set"].(bson.M)
	if !ok {
		t.Fatal("$set document missing")
	}
	onInsert, ok := update["$setOnInsert"].(bson.M)
	if !ok {
		t.Fatal("$setOnInsert document missing")
	}

	for _, field := range []string{"_id", "createdAt"} {
		if _, present := set[field]; present {
			t.Errorf("%s must not appear in $set", field)
		}
		if _, present := onInsert[field]; !present {
			t.Errorf("%s must appear in $setOnInsert", field)
		}
	}
	for _, field := range []string{"voterID", "tokenHash", "stage", "expiresAt", "used", "updatedAt"} {
		if _, present := set[field]; !present {
			t.Errorf("domain field %s missing from $set", field)
		}
	}
}

func TestUpsertUpdateSurvivesRegeneratedIDs(t *testing.T) {
	record := entities.FaceDescriptor{
		VoterID:    "voter-1",
		Descriptor: []float64{0.1, 0.2},
		Confidence: 0.95,
	}

	first := record.ParseModel().(*entities.FaceDescriptor)
	second := record.ParseModel().(*entities.FaceDescriptor)
	if first.ID == second.ID {
		t.Fatal("expected ParseModel to mint distinct IDs for zero-ID models")
	}

	for _, parsed := range []*entities.FaceDescriptor{first, second} {
		update, err := upsertUpdate(parsed)
		if err != nil {
			t.Fatalf("upsertUpdate returned error: %v", err)
		}
		set := update["$set"].(bson.M)
		if _, present := set["_id"]; present {
			t.Error("a regenerated _id leaked into $set; an overwrite of an existing record would be rejected")
		}
	}
}
