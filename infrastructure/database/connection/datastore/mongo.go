package datastore

import (
	"context"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"votegate.io/infrastructure/logger"
)

var (
	VoterModel          *mongo.Collection
	FaceDescriptorModel *mongo.Collection
	SessionTokenModel   *mongo.Collection
	BallotModel         *mongo.Collection

	client *mongo.Client
)

func ConnectToDatabase() {
	connectMongo()
}

func connectMongo() {
	url := os.Getenv("DB_URL")

	if url == "" {
		logger.Error("mongo url missing")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(url)
	clientOpts.SetMinPoolSize(5)
	clientOpts.SetMaxPoolSize(10)

	var err error
	client, err = mongo.Connect(ctx, clientOpts)

	if err != nil {
		logger.Warning("an error occured while starting the database", logger.LoggerOptions{Key: "error", Data: err})
		return
	}

	db := client.Database(os.Getenv("DB_NAME"))
	setUpIndexes(ctx, db)

	logger.Info("connected to mongodb successfully")
}

// Set up the indexes for the database
func setUpIndexes(ctx context.Context, db *mongo.Database) {
	VoterModel = db.Collection("Voters")
	VoterModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "nationalID", Value: 1}, {Key: "rollNumber", Value: 1}},
		Options: options.Index().SetUnique(true),
	}})

	// one descriptor record per voter, overwritten on re-enrollment
	FaceDescriptorModel = db.Collection("FaceDescriptors")
	FaceDescriptorModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "voterID", Value: 1}},
		Options: options.Index().SetUnique(true),
	}})

	// one active token per voter; lookups are always by hash
	SessionTokenModel = db.Collection("SessionTokens")
	SessionTokenModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "voterID", Value: 1}},
		Options: options.Index().SetUnique(true),
	}, {
		Keys:    bson.D{{Key: "tokenHash", Value: 1}},
		Options: options.Index(),
	}})

	// one ballot per voter, and one per consumed token so a retried
	// submission resolves to the original record
	BallotModel = db.Collection("Ballots")
	BallotModel.Indexes().CreateMany(ctx, []mongo.IndexModel{{
		Keys:    bson.D{{Key: "voterID", Value: 1}},
		Options: options.Index().SetUnique(true),
	}, {
		Keys:    bson.D{{Key: "tokenID", Value: 1}},
		Options: options.Index().SetUnique(true),
	}})

	logger.Info("mongodb indexes set up successfully")
}

func CleanUp() {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		logger.Error("error disconnecting from mongodb", logger.LoggerOptions{Key: "error", Data: err})
	}
}
