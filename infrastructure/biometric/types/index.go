package types

import "context"

// FaceExtractorType is the externally supplied image-to-descriptor
// capability: given an image, produce a fixed-length numeric vector plus a
// facial bounding box and detection confidence.
type FaceExtractorType interface {
	ExtractDescriptor(ctx context.Context, image []byte) (*Extraction, error)
}

type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// One detected face from the extraction engine.
type Detection struct {
	Descriptor []float64   `json:"descriptor"`
	Box        BoundingBox `json:"box"`
	Confidence float64     `json:"confidence"`
}

// Extraction is the selected detection for an image, after the
// highest-confidence tie-break.
type Extraction struct {
	Descriptor []float64
	Box        BoundingBox
	Confidence float64
}

// Wire format of the extraction engine.
type ExtractionRequest struct {
	Image []byte `json:"image"`
}

type ExtractionResponse struct {
	Success    bool        `json:"success"`
	Detections []Detection `json:"detections"`
	Error      *string     `json:"error"`
}
