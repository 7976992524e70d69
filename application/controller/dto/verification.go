package dto

import (
	"encoding/json"

	"votegate.io/infrastructure/biometric"
)

type SubmitLiveCaptureDTO struct {
	Token string `json:"token" validate:"required,len=64,hexadecimal"`
	// accepted as a bare JSON array or an array serialized as a string;
	// decoded through biometric.DecodeDescriptorJSON
	Descriptor json.RawMessage `json:"descriptor" validate:"required"`
	// per-frame liveness signals from the capture session
	Frames []biometric.FrameSignal `json:"frames"`
}
