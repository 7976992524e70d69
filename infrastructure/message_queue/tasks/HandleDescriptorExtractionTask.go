package queue_tasks

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	"votegate.io/application/constants"
	"votegate.io/application/repository"
	"votegate.io/application/usecases/enrollment"
	"votegate.io/infrastructure/biometric"
	"votegate.io/infrastructure/logger"
	mq_types "votegate.io/infrastructure/message_queue/types"
)

var HandleDescriptorExtractionTaskName mq_types.Queues = "extract_descriptor"

type ExtractDescriptorPayload struct {
	VoterID string
}

// HandleDescriptorExtractionTask enrolls a voter's descriptor from the
// registration photo on file. Queued when a voter reaches verification
// without an enrolled descriptor so the retry lives off the request path.
func HandleDescriptorExtractionTask(ctx context.Context, t *asynq.Task) error {
	var payload ExtractDescriptorPayload
	err := json.Unmarshal(t.Payload(), &payload)
	if err != nil {
		logger.Error("an error occured while unmarshalling descriptor extraction payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}

	voter, err := repository.VoterRepo().FindByID(payload.VoterID)
	if err != nil {
		return err
	}
	if voter == nil {
		logger.Warning("descriptor extraction queued for unknown voter", logger.LoggerOptions{
			Key:  "voterID",
			Data: payload.VoterID,
		})
		return nil
	}
	if len(voter.Photo) == 0 {
		logger.Warning("voter has no registration photo on file", logger.LoggerOptions{
			Key:  "voterID",
			Data: payload.VoterID,
		})
		return nil
	}

	service := &enrollment.Service{
		Extractor:         biometric.ExtractorService,
		Store:             repository.DescriptorStore(),
		Voters:            repository.VoterStore(),
		ExtractionTimeout: constants.ExtractionTimeout(),
	}
	return service.EnrollFace(ctx, voter.ID, voter.Photo)
}
