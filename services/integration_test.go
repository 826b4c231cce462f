package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hostel-backend/models"
	"hostel-backend/store"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Hostel{},
		&models.Room{},
		&models.Tenant{},
		&models.RoomAllocation{},
	))
	return db
}

// TestAllocationLifecycle walks the full workflow against a real store:
// one capacity-2 room is discovered, filled one tenant at a time, and
// disappears from the availability listing once full.
func TestAllocationLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	st := store.NewGormStore(db)
	availability := NewAvailabilityService(st)
	allocation := NewAllocationService(st)

	hostel := models.Hostel{ID: "H1", Name: "Sunrise PG", Address: "12 Lake Rd", TotalFloors: 3, TotalRooms: 10}
	require.NoError(t, db.Create(&hostel).Error)

	room := models.Room{
		ID: "R1", HostelID: &hostel.ID, Number: "201", Floor: "2",
		Capacity: "2", Status: models.RoomStatusAvailable, CurrentOccupancy: intPtr(0),
	}
	require.NoError(t, db.Create(&room).Error)

	// Empty room is discoverable.
	rooms, err := availability.FindAvailable(ctx, "H1", "2")
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "R1", rooms[0].ID)

	// First tenant: room half full, still stored as available.
	in := validInput("R1")
	res, err := allocation.Allocate(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 1, res.RoomOccupancy)
	assert.Equal(t, models.RoomStatusAvailable, res.RoomStatus)

	var got models.Room
	require.NoError(t, db.First(&got, "id = ?", "R1").Error)
	assert.Equal(t, 1, got.Occupancy())
	assert.Equal(t, models.RoomStatusAvailable, got.Status)

	var tenant models.Tenant
	require.NoError(t, db.First(&tenant, "id = ?", res.Tenant.ID).Error)
	require.NotNil(t, tenant.RoomID)
	assert.Equal(t, "R1", *tenant.RoomID)

	var active []models.RoomAllocation
	require.NoError(t, db.Where("room_id = ? AND status = ?", "R1", models.AllocationStatusActive).Find(&active).Error)
	require.Len(t, active, 1)
	assert.Equal(t, res.Tenant.ID, active[0].TenantID)
	assert.Equal(t, "2024-06-01", active[0].StartDate)

	// Still listed with one slot left.
	rooms, err = availability.FindAvailable(ctx, "H1", "2")
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, 1, rooms[0].CurrentOccupancy)

	// Second tenant fills the room.
	in2 := validInput("R1")
	in2.Tenant.Name = "Ravi Kumar"
	in2.Tenant.Email = "ravi@example.com"
	res2, err := allocation.Allocate(ctx, in2)
	require.NoError(t, err)
	assert.Equal(t, 2, res2.RoomOccupancy)
	assert.Equal(t, models.RoomStatusOccupied, res2.RoomStatus)

	require.NoError(t, db.First(&got, "id = ?", "R1").Error)
	assert.Equal(t, 2, got.Occupancy())
	assert.Equal(t, models.RoomStatusOccupied, got.Status)

	capacity, err := got.CapacityCount()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got.Occupancy(), 0)
	assert.LessOrEqual(t, got.Occupancy(), capacity)

	// Full room drops out of the listing.
	rooms, err = availability.FindAvailable(ctx, "H1", "2")
	require.NoError(t, err)
	assert.Empty(t, rooms)

	// A third allocation attempt is rejected and leaves no partial rows.
	in3 := validInput("R1")
	in3.Tenant.Email = "third@example.com"
	_, err = allocation.Allocate(ctx, in3)
	var aerr *AllocationError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, StageRoom, aerr.Stage)

	var tenantCount, allocationCount int64
	require.NoError(t, db.Model(&models.Tenant{}).Count(&tenantCount).Error)
	require.NoError(t, db.Model(&models.RoomAllocation{}).Count(&allocationCount).Error)
	assert.EqualValues(t, 2, tenantCount)
	assert.EqualValues(t, 2, allocationCount)
}

func TestAllocateDuplicateFormTokenRejected(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	st := store.NewGormStore(db)
	allocation := NewAllocationService(st)

	hostelID := "H1"
	room := models.Room{
		ID: "R1", HostelID: &hostelID, Number: "201", Floor: "2",
		Capacity: "3", Status: models.RoomStatusAvailable, CurrentOccupancy: intPtr(0),
	}
	require.NoError(t, db.Create(&room).Error)

	in := validInput("R1")
	in.Tenant.IdempotencyKey = "double-click-1"
	_, err := allocation.Allocate(ctx, in)
	require.NoError(t, err)

	// Resubmitting the same form fails on the tenant insert, before any
	// further write.
	_, err = allocation.Allocate(ctx, in)
	var aerr *AllocationError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, StageTenant, aerr.Stage)

	var got models.Room
	require.NoError(t, db.First(&got, "id = ?", "R1").Error)
	assert.Equal(t, 1, got.Occupancy(), "duplicate submission must not bump the counter")

	var tenantCount int64
	require.NoError(t, db.Model(&models.Tenant{}).Count(&tenantCount).Error)
	assert.EqualValues(t, 1, tenantCount)
}
