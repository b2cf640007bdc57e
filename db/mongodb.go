package db

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"being/config"
)

var (
	client   *mongo.Client
	database *mongo.Database
	bucket   *gridfs.Bucket
)

// InitMongoDB initializes the MongoDB connection and the image blob bucket
func InitMongoDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uri := config.GetMongoDBURI()
	if uri == "" {
		log.Fatal("MONGODB_URI environment variable not set")
	}

	clientOptions := options.Client().ApplyURI(uri)

	var err error
	client, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		return err
	}

	// Ping the database to verify connection
	err = client.Ping(ctx, nil)
	if err != nil {
		return err
	}

	database = client.Database(config.GetMongoDBDatabase())

	// GridFS bucket backs generated-image blobs
	bucket, err = gridfs.NewBucket(database)
	if err != nil {
		return err
	}

	log.Println("Connected to MongoDB successfully")
	return nil
}

// GetCollection returns a MongoDB collection
func GetCollection(collectionName string) *mongo.Collection {
	return database.Collection(collectionName)
}

// GetBucket returns the GridFS bucket used for image blobs
func GetBucket() *gridfs.Bucket {
	return bucket
}

// GetClient returns the MongoDB client
func GetClient() *mongo.Client {
	return client
}

// Close closes the MongoDB connection
func Close() error {
	if client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return client.Disconnect(ctx)
	}
	return nil
}

// CreateIndexes creates necessary indexes for performance
func CreateIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	indexesByCollection := map[string][]mongo.IndexModel{
		activitiesCollection: {
			{
				Keys:    bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		skillsCollection: {
			{
				Keys:    bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		historyCollection: {
			{Keys: bson.D{{Key: "activity_name", Value: 1}, {Key: "executed_at", Value: -1}}},
			{Keys: bson.D{{Key: "executed_at", Value: -1}}},
		},
		shortTermMemoryCollection: {
			{Keys: bson.D{{Key: "created_at", Value: 1}}},
			{Keys: bson.D{{Key: "type", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		longTermMemoryCollection: {
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "last_accessed_at", Value: -1}}},
		},
	}

	for name, indexes := range indexesByCollection {
		_, err := GetCollection(name).Indexes().CreateMany(ctx, indexes)
		if err != nil {
			log.Printf("Failed to create indexes for %s: %v", name, err)
		}
	}
}
