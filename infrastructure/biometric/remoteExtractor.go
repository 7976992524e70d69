package biometric

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/semaphore"
	"votegate.io/infrastructure/biometric/types"
	"votegate.io/infrastructure/logger"
	"votegate.io/infrastructure/network"
)

var ErrExtractionUnavailable = errors.New("face extraction engine unavailable")

// RemoteFaceEngine talks to the external neural-network inference service
// over HTTP. Descriptor extraction is bounded-time CPU work on the engine
// side, so calls carry the caller's deadline, retry transient failures with
// backoff, and are capped by a semaphore so a burst of verifications cannot
// pile unbounded load onto the engine.
type RemoteFaceEngine struct {
	Network        *network.NetworkController
	MaxConcurrency int64

	slots *semaphore.Weighted
}

func NewRemoteFaceEngine(controller *network.NetworkController, maxConcurrency int64) *RemoteFaceEngine {
	if maxConcurrency <= 0 {
		maxConcurrency = 4
	}
	return &RemoteFaceEngine{
		Network:        controller,
		MaxConcurrency: maxConcurrency,
		slots:          semaphore.NewWeighted(maxConcurrency),
	}
}

func (engine *RemoteFaceEngine) ExtractDescriptor(ctx context.Context, image []byte) (*types.Extraction, error) {
	if err := engine.slots.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionUnavailable, err)
	}
	defer engine.slots.Release(1)

	var response types.ExtractionResponse
	backoff := retry.WithMaxRetries(2, retry.NewExponential(250*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		body, statusCode, err := engine.Network.Post(ctx, "/extract-descriptor", map[string]string{}, types.ExtractionRequest{
			Image: image,
		})
		if err != nil {
			return retry.RetryableError(err)
		}
		if statusCode == nil || *statusCode >= 500 {
			return retry.RetryableError(fmt.Errorf("extraction engine returned status %v", statusCode))
		}
		if *statusCode != 200 {
			return fmt.Errorf("extraction engine rejected request with status %d", *statusCode)
		}
		return json.Unmarshal(*body, &response)
	})
	if err != nil {
		logger.Error("error extracting face descriptor", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, fmt.Errorf("%w: %v", ErrExtractionUnavailable, err)
	}

	if !response.Success || len(response.Detections) == 0 {
		return nil, ErrNoFaceDetected
	}

	// tie-break policy: when the photo contains multiple faces, the
	// highest-confidence detection wins
	best := response.Detections[0]
	for _, detection := range response.Detections[1:] {
		if detection.Confidence > best.Confidence {
			best = detection
		}
	}

	if _, err := ParseDescriptor(best.Descriptor); err != nil {
		logger.Error("extraction engine returned a malformed descriptor", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}

	return &types.Extraction{
		Descriptor: best.Descriptor,
		Box:        best.Box,
		Confidence: best.Confidence,
	}, nil
}
