package repository

import (
	"sync"

	"votegate.io/entities"
	"votegate.io/infrastructure/database/connection/datastore"
	"votegate.io/infrastructure/database/repository/mongo"
)

var ballotOnce = sync.Once{}

var ballotRepository mongo.MongoRepository[entities.Ballot]

func BallotRepo() *mongo.MongoRepository[entities.Ballot] {
	ballotOnce.Do(func() {
		ballotRepository = mongo.MongoRepository[entities.Ballot]{Model: datastore.BallotModel}
	})
	return &ballotRepository
}
