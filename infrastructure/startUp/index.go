package startup

import (
	"votegate.io/infrastructure/biometric"
	"votegate.io/infrastructure/database"
	"votegate.io/infrastructure/database/connection/datastore"
	"votegate.io/infrastructure/logger"
	"votegate.io/infrastructure/messaging/sms"
)

// Used to start services such as loggers, databases, queues, etc.
func StartServices() {
	logger.InitializeLogger()
	database.SetUpDatabase()
	biometric.InitialiseBiometricService()
	sms.InitialiseSMSService()
}

// Used to clean up after services that have been shutdown.
func CleanUpServices() {
	datastore.CleanUp()
}
