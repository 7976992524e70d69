package biometric

import (
	"errors"
	"math"
)

var ErrNoFrames = errors.New("no frames observed: camera feed never produced a detection")

// FrameSignal is what the capture client reports per frame: the
// eye-aspect-ratio derived blink signal and the face bounding-box center.
type FrameSignal struct {
	EyeAspectRatio float64 `json:"eyeAspectRatio"`
	BoxCenterX     float64 `json:"boxCenterX"`
	BoxCenterY     float64 `json:"boxCenterY"`
}

type LivenessConfig struct {
	// blinks required before the subject counts as live
	MinBlinkCount int
	// eye aspect ratio below this reads as a closed eye
	EyeClosedThreshold float64
	// frames that must pass after a blink before another can be counted
	DebounceFrames int
	// minimum pixel distance between consecutive box centers that counts
	// as head movement
	MovementMinPixels float64
}

func DefaultLivenessConfig() LivenessConfig {
	return LivenessConfig{
		MinBlinkCount:      2,
		EyeClosedThreshold: 0.21,
		DebounceFrames:     3,
		MovementMinPixels:  8,
	}
}

// LivenessEvaluator accumulates per-frame detections and decides whether
// the subject is a live human rather than a held-up photo. This is a
// defense-in-depth heuristic, not a security guarantee: it raises the cost
// of replaying a static image, nothing more.
type LivenessEvaluator struct {
	config LivenessConfig

	frameCount       int
	blinkCount       int
	eyeClosed        bool
	framesSinceBlink int
	headMoved        bool
	hasLastCenter    bool
	lastCenterX      float64
	lastCenterY      float64
}

func NewLivenessEvaluator(config LivenessConfig) *LivenessEvaluator {
	if config.MinBlinkCount <= 0 {
		config = DefaultLivenessConfig()
	}
	return &LivenessEvaluator{config: config, framesSinceBlink: config.DebounceFrames}
}

// Observe consumes one frame's signals.
func (evaluator *LivenessEvaluator) Observe(signal FrameSignal) {
	evaluator.frameCount++
	evaluator.framesSinceBlink++

	closed := signal.EyeAspectRatio < evaluator.config.EyeClosedThreshold
	// count a blink on the open->closed edge, debounced so one long blink
	// cannot register twice
	if closed && !evaluator.eyeClosed && evaluator.framesSinceBlink >= evaluator.config.DebounceFrames {
		evaluator.blinkCount++
		evaluator.framesSinceBlink = 0
	}
	evaluator.eyeClosed = closed

	if evaluator.hasLastCenter {
		dx := signal.BoxCenterX - evaluator.lastCenterX
		dy := signal.BoxCenterY - evaluator.lastCenterY
		if math.Sqrt(dx*dx+dy*dy) > evaluator.config.MovementMinPixels {
			evaluator.headMoved = true
		}
	}
	evaluator.hasLastCenter = true
	evaluator.lastCenterX = signal.BoxCenterX
	evaluator.lastCenterY = signal.BoxCenterY
}

// IsLive reports whether enough liveness evidence has accumulated. Once it
// returns true the evaluator resets for the next session. When no frames
// were ever observed it returns ErrNoFrames so a denied camera surfaces as
// its own failure mode instead of a fake "no match".
func (evaluator *LivenessEvaluator) IsLive() (bool, error) {
	if evaluator.frameCount == 0 {
		return false, ErrNoFrames
	}
	live := evaluator.blinkCount >= evaluator.config.MinBlinkCount && evaluator.headMoved
	if live {
		evaluator.Reset()
	}
	return live, nil
}

// Reset clears accumulated state so the evaluator can serve a new capture
// session.
func (evaluator *LivenessEvaluator) Reset() {
	evaluator.frameCount = 0
	evaluator.blinkCount = 0
	evaluator.eyeClosed = false
	evaluator.framesSinceBlink = evaluator.config.DebounceFrames
	evaluator.headMoved = false
	evaluator.hasLastCenter = false
}
