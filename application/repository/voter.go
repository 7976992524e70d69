package repository

import (
	"sync"

	"votegate.io/entities"
	"votegate.io/infrastructure/database/connection/datastore"
	"votegate.io/infrastructure/database/repository/mongo"
)

var voterOnce = sync.Once{}

var voterRepository mongo.MongoRepository[entities.Voter]

func VoterRepo() *mongo.MongoRepository[entities.Voter] {
	voterOnce.Do(func() {
		voterRepository = mongo.MongoRepository[entities.Voter]{Model: datastore.VoterModel}
	})
	return &voterRepository
}
