package connection

import (
	"votegate.io/infrastructure/database/connection/cache"
	"votegate.io/infrastructure/database/connection/datastore"
)

func ConnectToDatabase() {
	datastore.ConnectToDatabase()
	cache.ConnectToCache()
}
