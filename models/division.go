package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Division is an organizational unit that can hold assets alongside users.
type Division struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name     string               `bson:"name" json:"name"`
	Parent   *primitive.ObjectID  `bson:"parent,omitempty" json:"parent,omitempty"`
	Projects []string             `bson:"projects,omitempty" json:"projects"`
	Members  []primitive.ObjectID `bson:"members,omitempty" json:"members"`
	Assets   []primitive.ObjectID `bson:"assets,omitempty" json:"assets"`
}
