package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStatusForAction(t *testing.T) {
	assert.Equal(t, StatusAssigned, StatusForAction(ActionAssign))
	assert.Equal(t, StatusAssigned, StatusForAction(ActionTransfer))
	assert.Equal(t, StatusUnassigned, StatusForAction(ActionReturn))
	assert.Equal(t, StatusUnassigned, StatusForAction(ActionUnassign))
}

func TestIsValidAction(t *testing.T) {
	for _, a := range []string{"Assign", "Transfer", "Return", "Unassign"} {
		assert.True(t, IsValidAction(a), a)
	}
	assert.False(t, IsValidAction("assign"))
	assert.False(t, IsValidAction("Steal"))
	assert.False(t, IsValidAction(""))
}

func TestApplyAssignmentAssign(t *testing.T) {
	asset := Asset{SerialNo: "PC1001", Status: StatusUnassigned}
	alice := Holder{ID: primitive.NewObjectID(), Kind: HolderKindUser}
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	asset.ApplyAssignment(&alice, ActionAssign, at)

	assert.Equal(t, StatusAssigned, asset.Status)
	require.NotNil(t, asset.AssignedTo)
	assert.Equal(t, alice.ID, *asset.AssignedTo)
	assert.Equal(t, HolderKindUser, asset.AssignedToModel)

	last := asset.LastEvent()
	require.NotNil(t, last)
	assert.Equal(t, ActionAssign, last.Action)
	assert.Equal(t, at, last.Date)
	require.NotNil(t, last.AssignedTo)
	assert.Equal(t, alice.ID, *last.AssignedTo)
}

func TestApplyAssignmentReturnClearsHolder(t *testing.T) {
	alice := Holder{ID: primitive.NewObjectID(), Kind: HolderKindUser}
	asset := Asset{SerialNo: "PC1001"}
	asset.ApplyAssignment(&alice, ActionAssign, time.Now().UTC())

	asset.ApplyAssignment(nil, ActionReturn, time.Now().UTC())

	assert.Equal(t, StatusUnassigned, asset.Status)
	assert.Nil(t, asset.AssignedTo)
	assert.Empty(t, asset.AssignedToModel)

	last := asset.LastEvent()
	require.NotNil(t, last)
	assert.Equal(t, ActionReturn, last.Action)
	assert.Nil(t, last.AssignedTo)
}

// The canonical lifecycle: unassigned PC goes to alice, moves to bob, comes
// back to the shelf.
func TestApplyAssignmentLifecycle(t *testing.T) {
	alice := Holder{ID: primitive.NewObjectID(), Kind: HolderKindUser}
	bob := Holder{ID: primitive.NewObjectID(), Kind: HolderKindUser}
	asset := Asset{SerialNo: "PC1001", Status: StatusUnassigned}

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	asset.ApplyAssignment(&alice, ActionAssign, base)
	asset.ApplyAssignment(&bob, ActionTransfer, base.Add(time.Hour))
	asset.ApplyAssignment(nil, ActionReturn, base.Add(2*time.Hour))

	require.Len(t, asset.AssignmentHistory, 3)

	assert.Equal(t, ActionAssign, asset.AssignmentHistory[0].Action)
	assert.Equal(t, alice.ID, *asset.AssignmentHistory[0].AssignedTo)

	assert.Equal(t, ActionTransfer, asset.AssignmentHistory[1].Action)
	assert.Equal(t, bob.ID, *asset.AssignmentHistory[1].AssignedTo)

	assert.Equal(t, ActionReturn, asset.AssignmentHistory[2].Action)
	assert.Nil(t, asset.AssignmentHistory[2].AssignedTo)

	assert.Equal(t, StatusUnassigned, asset.Status)
	assert.Nil(t, asset.AssignedTo)
}

func TestApplyAssignmentToDivision(t *testing.T) {
	netops := Holder{ID: primitive.NewObjectID(), Kind: HolderKindDivision}
	asset := Asset{SerialNo: "SW3003"}

	asset.ApplyAssignment(&netops, ActionAssign, time.Now().UTC())

	assert.Equal(t, HolderKindDivision, asset.AssignedToModel)
	assert.Equal(t, netops.ID, *asset.AssignedTo)
}

func TestLastEventEmptyHistory(t *testing.T) {
	asset := Asset{}
	assert.Nil(t, asset.LastEvent())
}

func TestIsValidAssetType(t *testing.T) {
	assert.True(t, IsValidAssetType("PC"))
	assert.True(t, IsValidAssetType("Props"))
	assert.False(t, IsValidAssetType("pc"))
	assert.False(t, IsValidAssetType("Laptop"))
}

func TestIsValidAssetStatus(t *testing.T) {
	assert.True(t, IsValidAssetStatus("In Repair"))
	assert.True(t, IsValidAssetStatus("In AMC"))
	assert.False(t, IsValidAssetStatus("Broken"))
}
