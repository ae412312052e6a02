package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles understood by the role middleware.
const (
	RoleAdmin    = "Admin"
	RoleEngineer = "Engineer"
	RoleTrainee  = "Trainee"
)

type User struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name      string              `bson:"name" json:"name"`
	Email     string              `bson:"email" json:"email"`
	Password  string              `bson:"password" json:"-"`
	Role      string              `bson:"role" json:"role"`
	Division  *primitive.ObjectID `bson:"division,omitempty" json:"division,omitempty"`
	Mentor    *primitive.ObjectID `bson:"mentor,omitempty" json:"mentor,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}
