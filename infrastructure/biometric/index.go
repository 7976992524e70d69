package biometric

import (
	"os"

	"votegate.io/application/utils"
	"votegate.io/infrastructure/biometric/types"
	"votegate.io/infrastructure/network"
)

var ExtractorService types.FaceExtractorType

// InitialiseBiometricService wires up the extraction engine handle once at
// startup. Callers receive the capability through this handle; there is no
// lazily loaded global model state.
func InitialiseBiometricService() {
	ExtractorService = NewRemoteFaceEngine(&network.NetworkController{
		BaseUrl: os.Getenv("FACE_ENGINE_BASE_URL"),
	}, int64(utils.ParseIntWithDefault(os.Getenv("FACE_ENGINE_MAX_CONCURRENCY"), 4)))
}
