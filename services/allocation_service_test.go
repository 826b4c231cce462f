package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel-backend/models"
	"hostel-backend/store"
)

func validInput(roomID string) AllocationInput {
	return AllocationInput{
		Tenant: TenantDraft{
			Name:             "Asha Rao",
			Email:            "asha@example.com",
			Phone:            "555-0101",
			EmergencyContact: "555-0202",
			JoinDate:         "2024-06-01",
			Preferences:      &TenantPreferences{RoomType: "double", MaxRent: 6000},
		},
		RoomID:         roomID,
		StartDate:      "2024-06-01",
		DurationMonths: 6,
	}
}

func fakeWithRoom(occupancy int, capacity, status string) *fakeStore {
	fake := newFakeStore()
	hostel := "h1"
	fake.addRoom(models.Room{
		ID: "r1", HostelID: &hostel, Floor: "2", Number: "201",
		Capacity: capacity, Status: status, CurrentOccupancy: &occupancy,
	})
	return fake
}

func TestAllocateHappyPath(t *testing.T) {
	fake := fakeWithRoom(0, "2", models.RoomStatusAvailable)
	svc := NewAllocationService(fake)

	res, err := svc.Allocate(context.Background(), validInput("r1"))
	require.NoError(t, err)

	require.NotEmpty(t, res.Tenant.ID)
	require.NotNil(t, res.Tenant.RoomID)
	assert.Equal(t, "r1", *res.Tenant.RoomID)

	assert.Equal(t, res.Tenant.ID, res.Allocation.TenantID)
	assert.Equal(t, "r1", res.Allocation.RoomID)
	assert.Equal(t, models.AllocationStatusActive, res.Allocation.Status)
	assert.Equal(t, 6, res.Allocation.Duration)

	assert.Equal(t, 1, res.RoomOccupancy)
	assert.Equal(t, models.RoomStatusAvailable, res.RoomStatus)

	room := fake.rooms["r1"]
	assert.Equal(t, 1, room.Occupancy())
	assert.Equal(t, models.RoomStatusAvailable, room.Status)
}

func TestAllocateFillsRoomToCapacity(t *testing.T) {
	fake := fakeWithRoom(1, "2", models.RoomStatusAvailable)
	svc := NewAllocationService(fake)

	res, err := svc.Allocate(context.Background(), validInput("r1"))
	require.NoError(t, err)

	assert.Equal(t, 2, res.RoomOccupancy)
	assert.Equal(t, models.RoomStatusOccupied, res.RoomStatus)

	room := fake.rooms["r1"]
	assert.Equal(t, 2, room.Occupancy())
	assert.Equal(t, models.RoomStatusOccupied, room.Status)
}

func TestAllocateValidationFailsBeforeAnyWrite(t *testing.T) {
	fake := fakeWithRoom(0, "2", models.RoomStatusAvailable)
	svc := NewAllocationService(fake)

	bad := []AllocationInput{}

	in := validInput("r1")
	in.Tenant.Name = ""
	bad = append(bad, in)

	in = validInput("r1")
	in.Tenant.Email = "not-an-email"
	bad = append(bad, in)

	in = validInput("r1")
	in.Tenant.JoinDate = "June 1st"
	bad = append(bad, in)

	in = validInput("")
	bad = append(bad, in)

	in = validInput("r1")
	in.StartDate = "2024/06/01"
	bad = append(bad, in)

	in = validInput("r1")
	in.DurationMonths = 0
	bad = append(bad, in)

	for _, input := range bad {
		_, err := svc.Allocate(context.Background(), input)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	}
	assert.Empty(t, fake.calls, "validation failures must not touch the store")
}

func TestAllocateTenantInsertFailureStopsSaga(t *testing.T) {
	fake := fakeWithRoom(0, "2", models.RoomStatusAvailable)
	fake.failCreateTenant = &store.WriteError{Table: "tenants", Err: errors.New("connection reset")}
	svc := NewAllocationService(fake)

	_, err := svc.Allocate(context.Background(), validInput("r1"))

	var aerr *AllocationError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, StageTenant, aerr.Stage)
	assert.False(t, aerr.NeedsReconciliation())

	assert.Equal(t, 1, fake.calls["CreateTenant"])
	assert.Zero(t, fake.calls["CreateAllocation"])
	assert.Zero(t, fake.calls["RoomByID"])
	assert.Zero(t, fake.calls["UpdateRoomOccupancy"])
}

func TestAllocateAllocationFailureCompensatesTenant(t *testing.T) {
	fake := fakeWithRoom(0, "2", models.RoomStatusAvailable)
	fake.failCreateAllocation = &store.WriteError{Table: "room_allocations", Err: errors.New("constraint violated")}
	svc := NewAllocationService(fake)

	_, err := svc.Allocate(context.Background(), validInput("r1"))

	var aerr *AllocationError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, StageAllocation, aerr.Stage)
	assert.False(t, aerr.NeedsReconciliation())

	// The orphaned tenant from step 1 was deleted again.
	assert.Equal(t, 1, fake.calls["DeleteTenant"])
	assert.Empty(t, fake.tenants)
	assert.Zero(t, fake.calls["UpdateRoomOccupancy"])
}

func TestAllocateCompensationFailureReportsOrphan(t *testing.T) {
	fake := fakeWithRoom(0, "2", models.RoomStatusAvailable)
	fake.failCreateAllocation = &store.WriteError{Table: "room_allocations", Err: errors.New("constraint violated")}
	fake.failDeleteTenant = &store.WriteError{Table: "tenants", Err: errors.New("connection reset")}
	svc := NewAllocationService(fake)

	_, err := svc.Allocate(context.Background(), validInput("r1"))

	var aerr *AllocationError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, StageAllocation, aerr.Stage)
	assert.True(t, aerr.NeedsReconciliation())
	assert.NotEmpty(t, aerr.OrphanTenantID)
	assert.Contains(t, aerr.Error(), "manual reconciliation")
}

func TestAllocateRoomVanishedCompensatesBothRows(t *testing.T) {
	fake := fakeWithRoom(0, "2", models.RoomStatusAvailable)
	fake.failRoomByID = &store.NotFoundError{Table: "rooms", ID: "r1"}
	svc := NewAllocationService(fake)

	_, err := svc.Allocate(context.Background(), validInput("r1"))

	var aerr *AllocationError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, StageRoom, aerr.Stage)
	assert.False(t, aerr.NeedsReconciliation())
	assert.Empty(t, fake.tenants)
	assert.Empty(t, fake.allocations)
}

func TestAllocateRoomFullAtCommitTime(t *testing.T) {
	// The availability snapshot said there was space, but by commit time
	// another allocation took the last slot.
	fake := fakeWithRoom(2, "2", models.RoomStatusAvailable)
	svc := NewAllocationService(fake)

	_, err := svc.Allocate(context.Background(), validInput("r1"))

	var aerr *AllocationError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, StageRoom, aerr.Stage)

	var invalid *models.InvalidRoomError
	require.ErrorAs(t, err, &invalid)
	assert.Empty(t, fake.tenants)
	assert.Empty(t, fake.allocations)
	assert.Zero(t, fake.calls["UpdateRoomOccupancy"])
	room := fake.rooms["r1"]
	assert.Equal(t, 2, room.Occupancy(), "counter must not move past capacity")
}

func TestAllocateMaintenanceRoomRejected(t *testing.T) {
	fake := fakeWithRoom(0, "2", models.RoomStatusMaintenance)
	svc := NewAllocationService(fake)

	_, err := svc.Allocate(context.Background(), validInput("r1"))

	var aerr *AllocationError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, StageRoom, aerr.Stage)
	assert.Empty(t, fake.tenants)
}

func TestAllocateRoomUpdateFailureFlagsForReconciliation(t *testing.T) {
	fake := fakeWithRoom(0, "2", models.RoomStatusAvailable)
	fake.failUpdateRoom = store.ErrStaleOccupancy
	svc := NewAllocationService(fake)

	_, err := svc.Allocate(context.Background(), validInput("r1"))

	var aerr *AllocationError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, StageRoomUpdate, aerr.Stage)
	assert.ErrorIs(t, err, store.ErrStaleOccupancy)

	// Tenant and allocation stand; the error carries their ids instead of
	// unwinding committed rows.
	assert.True(t, aerr.NeedsReconciliation())
	assert.Len(t, fake.tenants, 1)
	assert.Len(t, fake.allocations, 1)
	assert.Zero(t, fake.calls["DeleteTenant"])
	assert.Zero(t, fake.calls["DeleteAllocation"])
}

func TestAllocateCarriesIdempotencyKey(t *testing.T) {
	fake := fakeWithRoom(0, "2", models.RoomStatusAvailable)
	svc := NewAllocationService(fake)

	in := validInput("r1")
	in.Tenant.IdempotencyKey = "form-token-7"
	res, err := svc.Allocate(context.Background(), in)
	require.NoError(t, err)

	require.NotNil(t, res.Tenant.IdempotencyKey)
	assert.Equal(t, "form-token-7", *res.Tenant.IdempotencyKey)
}
