package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"votegate.io/infrastructure/logger"
)

const defaultTimeout = 10 * time.Second

func (repo *MongoRepository[T]) CreateOne(ctx context.Context, payload T) (*T, error) {
	c, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	parsed := payload.ParseModel().(*T)
	_, err := repo.Model.InsertOne(c, parsed)
	if err != nil {
		logger.Error("mongo error occured while running CreateOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return parsed, nil
}

func (repo *MongoRepository[T]) FindByID(id string, opts ...*options.FindOneOptions) (*T, error) {
	return repo.FindOneByFilter(map[string]interface{}{"_id": id}, opts...)
}

func (repo *MongoRepository[T]) FindOneByFilter(filter map[string]interface{}, opts ...*options.FindOneOptions) (*T, error) {
	c, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var result T
	err := repo.Model.FindOne(c, filter, opts...).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.Error("mongo error occured while running FindOneByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return &result, nil
}

func (repo *MongoRepository[T]) UpdatePartialByFilter(ctx context.Context, filter map[string]interface{}, update map[string]interface{}) (bool, error) {
	c, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := repo.Model.UpdateOne(c, filter, bson.M{
		"$set": update,
	})
	if err != nil {
		logger.Error("mongo error occured while running UpdatePartialByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return false, err
	}
	return result.MatchedCount > 0, nil
}

// upsertUpdate splits a parsed model into the fields written on every
// upsert and the identity fields pinned at insert time. A matched
// document keeps its _id and createdAt; mongo rejects updates that try
// to rewrite _id, so those fields must only apply to a brand new
// document.
func upsertUpdate(parsed interface{}) (bson.M, error) {
	raw, err := bson.Marshal(parsed)
	if err != nil {
		return nil, err
	}
	fields := bson.M{}
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	onInsert := bson.M{}
	for _, field := range []string{"_id", "createdAt"} {
		if value, ok := fields[field]; ok {
			onInsert[field] = value
			delete(fields, field)
		}
	}
	return bson.M{"$set": fields, "$setOnInsert": onInsert}, nil
}

// UpsertByFilter overwrites the document matching filter or inserts it
// when absent. Used for records with an at-most-one-per-voter invariant
// (descriptors, session tokens) so the overwrite is a single write.
func (repo *MongoRepository[T]) UpsertByFilter(ctx context.Context, filter map[string]interface{}, payload T) error {
	c, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update, err := upsertUpdate(payload.ParseModel())
	if err != nil {
		logger.Error("failed to build upsert update document", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}
	_, err = repo.Model.UpdateOne(c, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		logger.Error("mongo error occured while running UpsertByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}
	return nil
}

// FindOneAndUpdate applies update to the single document matching filter
// and returns the pre-update document, or nil when nothing matched. The
// match and the write happen as one storage-level operation, which is what
// makes conditional state flips (used=false -> true) safe under concurrent
// requests.
func (repo *MongoRepository[T]) FindOneAndUpdate(ctx context.Context, filter map[string]interface{}, update map[string]interface{}) (*T, error) {
	c, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var result T
	err := repo.Model.FindOneAndUpdate(c, filter, bson.M{
		"$set": update,
	}, options.FindOneAndUpdate().SetReturnDocument(options.Before)).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.Error("mongo error occured while running FindOneAndUpdate", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return &result, nil
}

func (repo *MongoRepository[T]) DeleteByFilter(ctx context.Context, filter map[string]interface{}) (int64, error) {
	c, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := repo.Model.DeleteMany(c, filter)
	if err != nil {
		logger.Error("mongo error occured while running DeleteByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return 0, err
	}
	return result.DeletedCount, nil
}
