// handlers/collections.go
package handlers

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/uplifts-neel/lab-inventory-managment/database"
)

var (
	assetCollection      *mongo.Collection
	assignmentCollection *mongo.Collection
	userCollection       *mongo.Collection
	divisionCollection   *mongo.Collection
	amcCollection        *mongo.Collection
	auditCollection      *mongo.Collection
)

func InitCollections() {
	db := database.DB()
	assetCollection = db.Collection("assets")
	assignmentCollection = db.Collection("assignments")
	userCollection = db.Collection("users")
	divisionCollection = db.Collection("divisions")
	amcCollection = db.Collection("amctickets")
	auditCollection = db.Collection("auditlogs")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Uniqueness lives in the database, not just in handler checks.
	_, err := assetCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "serialNo", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("serialNo index: %v", err)
	}

	_, err = userCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("email index: %v", err)
	}

	// Supports the duplicate-window scan and the cleanup utility.
	_, err = assignmentCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "asset", Value: 1},
			{Key: "assignedTo", Value: 1},
			{Key: "action", Value: 1},
			{Key: "date", Value: -1},
		},
	})
	if err != nil {
		log.Printf("assignment index: %v", err)
	}
}
