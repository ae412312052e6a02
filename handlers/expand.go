package handlers

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/uplifts-neel/lab-inventory-managment/middleware"
	"github.com/uplifts-neel/lab-inventory-managment/models"
)

// identityOf returns the authenticated identity, or nil on unauthenticated
// routes.
func identityOf(r *http.Request) *middleware.Identity {
	ident, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		return nil
	}
	return ident
}

// assignerID resolves the assigner reference for a new assignment: the
// explicit request field wins, otherwise the authenticated caller.
func assignerID(r *http.Request, requested string) *primitive.ObjectID {
	if requested != "" {
		if id, err := primitive.ObjectIDFromHex(requested); err == nil {
			return &id
		}
	}
	if ident := identityOf(r); ident != nil {
		id := ident.UserID
		return &id
	}
	return nil
}

func loadAssetsByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Asset, error) {
	out := make(map[primitive.ObjectID]*models.Asset, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cursor, err := assetCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assets []models.Asset
	if err := cursor.All(ctx, &assets); err != nil {
		return nil, err
	}
	for i := range assets {
		out[assets[i].ID] = &assets[i]
	}
	return out, nil
}

func loadUsersByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	out := make(map[primitive.ObjectID]*models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cursor, err := userCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
		out[users[i].ID] = &users[i]
	}
	return out, nil
}

func loadDivisionsByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Division, error) {
	out := make(map[primitive.ObjectID]*models.Division, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cursor, err := divisionCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var divisions []models.Division
	if err := cursor.All(ctx, &divisions); err != nil {
		return nil, err
	}
	for i := range divisions {
		out[divisions[i].ID] = &divisions[i]
	}
	return out, nil
}
