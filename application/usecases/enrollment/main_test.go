package enrollment

import (
	"os"
	"testing"

	"votegate.io/infrastructure/logger"
)

func TestMain(m *testing.M) {
	logger.InitializeLogger()
	os.Exit(m.Run())
}
