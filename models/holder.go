package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HolderKind discriminates the polymorphic holder reference on assets and
// assignments. Only users and divisions can hold assets.
type HolderKind string

const (
	HolderKindUser     HolderKind = "User"
	HolderKindDivision HolderKind = "Division"
)

// ParseHolderKind rejects anything that is not a known kind so that an
// unrecognized discriminator never reaches the database.
func ParseHolderKind(s string) (HolderKind, error) {
	switch HolderKind(s) {
	case HolderKindUser:
		return HolderKindUser, nil
	case HolderKindDivision:
		return HolderKindDivision, nil
	default:
		return "", fmt.Errorf("unknown holder kind %q", s)
	}
}

// CollectionName maps a holder kind to the collection its documents live in.
func (k HolderKind) CollectionName() (string, error) {
	switch k {
	case HolderKindUser:
		return "users", nil
	case HolderKindDivision:
		return "divisions", nil
	default:
		return "", fmt.Errorf("unknown holder kind %q", k)
	}
}

// Holder is a resolved holder reference: the id plus the kind that tells us
// which collection it points into.
type Holder struct {
	ID   primitive.ObjectID
	Kind HolderKind
}
