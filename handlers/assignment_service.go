package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/uplifts-neel/lab-inventory-managment/database"
	"github.com/uplifts-neel/lab-inventory-managment/models"
)

// Sentinel errors for the assignment service. Handlers map these to HTTP
// status codes; everything else is a storage failure.
var (
	errAssetNotFound       = errors.New("asset not found")
	errHolderNotFound      = errors.New("holder not found")
	errDuplicateAssignment = errors.New("duplicate assignment within window")
)

// duplicateWindowFilter matches assignment records that would make a new
// (asset, holder, action) record a double submission.
func duplicateWindowFilter(assetID, holderID primitive.ObjectID, action models.AssignmentAction, cutoff time.Time) bson.M {
	return bson.M{
		"asset":      assetID,
		"assignedTo": holderID,
		"action":     action,
		"date":       bson.M{"$gte": cutoff},
	}
}

// recordAssignmentAction applies one assignment action: it validates that the
// asset and holder exist, rejects likely double submissions, then writes the
// assignment record and the asset's denormalized state in a single session
// transaction so readers never see one without the other.
func recordAssignmentAction(ctx context.Context, assetID primitive.ObjectID, holder models.Holder,
	assignedBy *primitive.ObjectID, action models.AssignmentAction, remarks string) (*models.Assignment, error) {

	var asset models.Asset
	if err := assetCollection.FindOne(ctx, bson.M{"_id": assetID}).Decode(&asset); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errAssetNotFound
		}
		return nil, fmt.Errorf("load asset: %w", err)
	}

	collName, err := holder.Kind.CollectionName()
	if err != nil {
		return nil, err
	}
	n, err := database.DB().Collection(collName).CountDocuments(ctx, bson.M{"_id": holder.ID})
	if err != nil {
		return nil, fmt.Errorf("check holder: %w", err)
	}
	if n == 0 {
		return nil, errHolderNotFound
	}

	now := time.Now().UTC()
	cutoff := now.Add(-models.DuplicateWindow)
	dup, err := assignmentCollection.CountDocuments(ctx, duplicateWindowFilter(assetID, holder.ID, action, cutoff))
	if err != nil {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}
	if dup > 0 {
		return nil, errDuplicateAssignment
	}

	assignment := &models.Assignment{
		ID:              primitive.NewObjectID(),
		Asset:           assetID,
		AssignedTo:      holder.ID,
		AssignedToModel: holder.Kind,
		AssignedBy:      assignedBy,
		Date:            now,
		Action:          action,
		Remarks:         remarks,
	}

	asset.ApplyAssignment(&holder, action, now)
	event := asset.LastEvent()

	setFields := bson.M{
		"status":          asset.Status,
		"assignedTo":      asset.AssignedTo,
		"assignedToModel": asset.AssignedToModel,
	}
	if asset.AssignedTo == nil {
		setFields["assignedToModel"] = nil
	}
	assetUpdate := bson.M{
		"$set":  setFields,
		"$push": bson.M{"assignmentHistory": event},
	}

	session, err := database.Client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := assignmentCollection.InsertOne(sc, assignment); err != nil {
			return nil, err
		}
		res, err := assetCollection.UpdateByID(sc, assetID, assetUpdate)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, errAssetNotFound
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, errAssetNotFound) {
			return nil, errAssetNotFound
		}
		log.Printf("assignment transaction failed for asset %s: %v", assetID.Hex(), err)
		return nil, fmt.Errorf("assignment transaction: %w", err)
	}

	return assignment, nil
}
