package repository

import (
	"sync"

	"votegate.io/entities"
	"votegate.io/infrastructure/database/connection/datastore"
	"votegate.io/infrastructure/database/repository/mongo"
)

var faceDescriptorOnce = sync.Once{}

var faceDescriptorRepository mongo.MongoRepository[entities.FaceDescriptor]

func FaceDescriptorRepo() *mongo.MongoRepository[entities.FaceDescriptor] {
	faceDescriptorOnce.Do(func() {
		faceDescriptorRepository = mongo.MongoRepository[entities.FaceDescriptor]{Model: datastore.FaceDescriptorModel}
	})
	return &faceDescriptorRepository
}
