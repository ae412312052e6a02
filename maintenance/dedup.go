// Package maintenance holds offline cleanup operations that are run by hand,
// never from request handlers.
package maintenance

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/uplifts-neel/lab-inventory-managment/models"
)

type dupKey struct {
	Asset      primitive.ObjectID
	AssignedTo primitive.ObjectID
	Action     models.AssignmentAction
}

// DuplicateAssignmentIDs selects the records the cleanup should delete: for
// every (asset, holder, action) group with more than one member, everything
// except the one with the latest date. Ties on date keep the later record in
// input order, matching how the live window treats simultaneous submissions.
func DuplicateAssignmentIDs(assignments []models.Assignment) []primitive.ObjectID {
	keep := make(map[dupKey]models.Assignment)
	var doomed []primitive.ObjectID

	for _, a := range assignments {
		key := dupKey{Asset: a.Asset, AssignedTo: a.AssignedTo, Action: a.Action}
		prev, seen := keep[key]
		if !seen {
			keep[key] = a
			continue
		}
		if a.Date.Before(prev.Date) {
			doomed = append(doomed, a.ID)
		} else {
			doomed = append(doomed, prev.ID)
			keep[key] = a
		}
	}

	return doomed
}

// CleanupDuplicateAssignments loads the whole assignment log, finds duplicate
// groups and deletes all but the most recent record in each. Returns how many
// records were removed.
func CleanupDuplicateAssignments(ctx context.Context, assignments *mongo.Collection) (int64, error) {
	cursor, err := assignments.Find(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("load assignments: %w", err)
	}
	defer cursor.Close(ctx)

	var all []models.Assignment
	if err := cursor.All(ctx, &all); err != nil {
		return 0, fmt.Errorf("decode assignments: %w", err)
	}

	doomed := DuplicateAssignmentIDs(all)
	if len(doomed) == 0 {
		log.Printf("no duplicate assignments found among %d records", len(all))
		return 0, nil
	}

	res, err := assignments.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": doomed}})
	if err != nil {
		return 0, fmt.Errorf("delete duplicates: %w", err)
	}

	log.Printf("removed %d duplicate assignments", res.DeletedCount)
	return res.DeletedCount, nil
}
