package maintenance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/uplifts-neel/lab-inventory-managment/models"
)

func mkAssignment(asset, holder primitive.ObjectID, action models.AssignmentAction, at time.Time) models.Assignment {
	return models.Assignment{
		ID:              primitive.NewObjectID(),
		Asset:           asset,
		AssignedTo:      holder,
		AssignedToModel: models.HolderKindUser,
		Date:            at,
		Action:          action,
	}
}

func TestDuplicateAssignmentIDsKeepsLatest(t *testing.T) {
	asset := primitive.NewObjectID()
	holder := primitive.NewObjectID()
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	oldest := mkAssignment(asset, holder, models.ActionAssign, base)
	middle := mkAssignment(asset, holder, models.ActionAssign, base.Add(time.Minute))
	newest := mkAssignment(asset, holder, models.ActionAssign, base.Add(2*time.Minute))

	doomed := DuplicateAssignmentIDs([]models.Assignment{middle, newest, oldest})

	require.Len(t, doomed, 2)
	assert.Contains(t, doomed, oldest.ID)
	assert.Contains(t, doomed, middle.ID)
	assert.NotContains(t, doomed, newest.ID)
}

func TestDuplicateAssignmentIDsDistinctGroupsUntouched(t *testing.T) {
	asset := primitive.NewObjectID()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	now := time.Now().UTC()

	records := []models.Assignment{
		// Same asset and holder but different actions are not duplicates.
		mkAssignment(asset, alice, models.ActionAssign, now),
		mkAssignment(asset, alice, models.ActionReturn, now.Add(time.Second)),
		// Same asset and action but a different holder.
		mkAssignment(asset, bob, models.ActionAssign, now.Add(2*time.Second)),
	}

	assert.Empty(t, DuplicateAssignmentIDs(records))
}

func TestDuplicateAssignmentIDsMixedGroups(t *testing.T) {
	assetA := primitive.NewObjectID()
	assetB := primitive.NewObjectID()
	holder := primitive.NewObjectID()
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	dupOld := mkAssignment(assetA, holder, models.ActionAssign, base)
	dupNew := mkAssignment(assetA, holder, models.ActionAssign, base.Add(time.Second))
	single := mkAssignment(assetB, holder, models.ActionAssign, base)

	doomed := DuplicateAssignmentIDs([]models.Assignment{dupOld, dupNew, single})

	require.Len(t, doomed, 1)
	assert.Equal(t, dupOld.ID, doomed[0])
}

func TestDuplicateAssignmentIDsEmpty(t *testing.T) {
	assert.Empty(t, DuplicateAssignmentIDs(nil))
	assert.Empty(t, DuplicateAssignmentIDs([]models.Assignment{}))
}
