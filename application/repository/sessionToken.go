package repository

import (
	"sync"

	"votegate.io/entities"
	"votegate.io/infrastructure/database/connection/datastore"
	"votegate.io/infrastructure/database/repository/mongo"
)

var sessionTokenOnce = sync.Once{}

var sessionTokenRepository mongo.MongoRepository[entities.SessionToken]

func SessionTokenRepo() *mongo.MongoRepository[entities.SessionToken] {
	sessionTokenOnce.Do(func() {
		sessionTokenRepository = mongo.MongoRepository[entities.SessionToken]{Model: datastore.SessionTokenModel}
	})
	return &sessionTokenRepository
}
