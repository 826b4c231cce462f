package services

import (
	"context"

	"github.com/google/uuid"

	"hostel-backend/models"
	"hostel-backend/store"
)

// fakeStore is an in-memory RecordStore with per-method call counters and
// injectable failures, used to assert saga sequencing.
type fakeStore struct {
	rooms       map[string]models.Room
	roomOrder   []string
	tenants     map[string]models.Tenant
	allocations map[string]models.RoomAllocation

	calls map[string]int

	failCreateTenant     error
	failCreateAllocation error
	failRoomByID         error
	failUpdateRoom       error
	failDeleteTenant     error
	failDeleteAllocation error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rooms:       map[string]models.Room{},
		tenants:     map[string]models.Tenant{},
		allocations: map[string]models.RoomAllocation{},
		calls:       map[string]int{},
	}
}

func (f *fakeStore) addRoom(room models.Room) {
	if _, ok := f.rooms[room.ID]; !ok {
		f.roomOrder = append(f.roomOrder, room.ID)
	}
	f.rooms[room.ID] = room
}

func (f *fakeStore) RoomsByHostelFloor(ctx context.Context, hostelID, floor string) ([]models.Room, error) {
	f.calls["RoomsByHostelFloor"]++
	var out []models.Room
	for _, id := range f.roomOrder {
		room := f.rooms[id]
		if room.HostelID != nil && *room.HostelID == hostelID && room.Floor == floor {
			out = append(out, room)
		}
	}
	return out, nil
}

func (f *fakeStore) RoomByID(ctx context.Context, id string) (models.Room, error) {
	f.calls["RoomByID"]++
	if f.failRoomByID != nil {
		return models.Room{}, f.failRoomByID
	}
	room, ok := f.rooms[id]
	if !ok {
		return models.Room{}, &store.NotFoundError{Table: "rooms", ID: id}
	}
	return room, nil
}

func (f *fakeStore) UpdateRoomOccupancy(ctx context.Context, roomID string, occupancy int, status string, expected *int) error {
	f.calls["UpdateRoomOccupancy"]++
	if f.failUpdateRoom != nil {
		return f.failUpdateRoom
	}
	room, ok := f.rooms[roomID]
	if !ok {
		return &store.NotFoundError{Table: "rooms", ID: roomID}
	}
	if expected != nil && room.Occupancy() != *expected {
		return store.ErrStaleOccupancy
	}
	occ := occupancy
	room.CurrentOccupancy = &occ
	room.Status = status
	f.rooms[roomID] = room
	return nil
}

func (f *fakeStore) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	f.calls["CreateTenant"]++
	if f.failCreateTenant != nil {
		return f.failCreateTenant
	}
	if tenant.ID == "" {
		tenant.ID = uuid.NewString()
	}
	f.tenants[tenant.ID] = *tenant
	return nil
}

func (f *fakeStore) DeleteTenant(ctx context.Context, id string) error {
	f.calls["DeleteTenant"]++
	if f.failDeleteTenant != nil {
		return f.failDeleteTenant
	}
	if _, ok := f.tenants[id]; !ok {
		return &store.NotFoundError{Table: "tenants", ID: id}
	}
	delete(f.tenants, id)
	return nil
}

func (f *fakeStore) CreateAllocation(ctx context.Context, allocation *models.RoomAllocation) error {
	f.calls["CreateAllocation"]++
	if f.failCreateAllocation != nil {
		return f.failCreateAllocation
	}
	if allocation.ID == "" {
		allocation.ID = uuid.NewString()
	}
	f.allocations[allocation.ID] = *allocation
	return nil
}

func (f *fakeStore) DeleteAllocation(ctx context.Context, id string) error {
	f.calls["DeleteAllocation"]++
	if f.failDeleteAllocation != nil {
		return f.failDeleteAllocation
	}
	if _, ok := f.allocations[id]; !ok {
		return &store.NotFoundError{Table: "room_allocations", ID: id}
	}
	delete(f.allocations, id)
	return nil
}
