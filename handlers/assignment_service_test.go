package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/uplifts-neel/lab-inventory-managment/models"
)

func TestDuplicateWindowFilter(t *testing.T) {
	assetID := primitive.NewObjectID()
	holderID := primitive.NewObjectID()
	cutoff := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	filter := duplicateWindowFilter(assetID, holderID, models.ActionAssign, cutoff)

	assert.Equal(t, assetID, filter["asset"])
	assert.Equal(t, holderID, filter["assignedTo"])
	assert.Equal(t, models.ActionAssign, filter["action"])

	dateCond, ok := filter["date"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, cutoff, dateCond["$gte"])
}

func TestCreateAssignmentRequestValidation(t *testing.T) {
	valid := createAssignmentRequest{
		Asset:      primitive.NewObjectID().Hex(),
		AssignedTo: primitive.NewObjectID().Hex(),
		Action:     "Assign",
	}
	assert.NoError(t, validate.Struct(valid))

	missingAsset := valid
	missingAsset.Asset = ""
	assert.Error(t, validate.Struct(missingAsset))

	missingHolder := valid
	missingHolder.AssignedTo = ""
	assert.Error(t, validate.Struct(missingHolder))

	missingAction := valid
	missingAction.Action = ""
	assert.Error(t, validate.Struct(missingAction))
}
