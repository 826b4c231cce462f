package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"hostel-backend/models"
)

// RecordStore is the narrow persistence contract the allocation workflow
// calls through. The interface promises no multi-table atomicity: each
// method is a single round trip, and callers that need cross-table
// consistency must sequence writes and compensate themselves.
type RecordStore interface {
	RoomsByHostelFloor(ctx context.Context, hostelID, floor string) ([]models.Room, error)
	RoomByID(ctx context.Context, id string) (models.Room, error)
	// UpdateRoomOccupancy writes the counter and the derived status in one
	// statement. When expected is non-nil the update is conditional on the
	// current counter still holding that value; a conflict returns
	// ErrStaleOccupancy.
	UpdateRoomOccupancy(ctx context.Context, roomID string, occupancy int, status string, expected *int) error

	CreateTenant(ctx context.Context, tenant *models.Tenant) error
	DeleteTenant(ctx context.Context, id string) error

	CreateAllocation(ctx context.Context, allocation *models.RoomAllocation) error
	DeleteAllocation(ctx context.Context, id string) error
}

// gormStore implements RecordStore on gorm.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a gorm-backed RecordStore.
func NewGormStore(db *gorm.DB) RecordStore {
	return &gormStore{db: db}
}

func (s *gormStore) RoomsByHostelFloor(ctx context.Context, hostelID, floor string) ([]models.Room, error) {
	var rooms []models.Room
	err := s.db.WithContext(ctx).
		Where("hostel_id = ? AND floor = ?", hostelID, floor).
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *gormStore) RoomByID(ctx context.Context, id string) (models.Room, error) {
	var room models.Room
	err := s.db.WithContext(ctx).First(&room, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, &NotFoundError{Table: "rooms", ID: id}
		}
		return models.Room{}, err
	}
	return room, nil
}

func (s *gormStore) UpdateRoomOccupancy(ctx context.Context, roomID string, occupancy int, status string, expected *int) error {
	q := s.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", roomID)
	if expected != nil {
		// NULL counters count as 0 for the purposes of the guard.
		q = q.Where("current_occupancy = ? OR (current_occupancy IS NULL AND ? = 0)", *expected, *expected)
	}

	res := q.Updates(map[string]interface{}{
		"current_occupancy": occupancy,
		"status":            status,
	})
	if res.Error != nil {
		return &WriteError{Table: "rooms", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		if expected != nil {
			// Distinguish a vanished room from a concurrent counter change.
			var count int64
			if err := s.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", roomID).Count(&count).Error; err == nil && count == 0 {
				return &NotFoundError{Table: "rooms", ID: roomID}
			}
			return ErrStaleOccupancy
		}
		return &NotFoundError{Table: "rooms", ID: roomID}
	}
	return nil
}

func (s *gormStore) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	if err := s.db.WithContext(ctx).Create(tenant).Error; err != nil {
		return &WriteError{Table: "tenants", Err: err}
	}
	return nil
}

func (s *gormStore) DeleteTenant(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Tenant{}, "id = ?", id)
	if res.Error != nil {
		return &WriteError{Table: "tenants", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Table: "tenants", ID: id}
	}
	return nil
}

func (s *gormStore) CreateAllocation(ctx context.Context, allocation *models.RoomAllocation) error {
	if err := s.db.WithContext(ctx).Create(allocation).Error; err != nil {
		return &WriteError{Table: "room_allocations", Err: err}
	}
	return nil
}

func (s *gormStore) DeleteAllocation(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.RoomAllocation{}, "id = ?", id)
	if res.Error != nil {
		return &WriteError{Table: "room_allocations", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Table: "room_allocations", ID: id}
	}
	return nil
}

// IsUniqueViolation reports whether err looks like a unique-constraint
// failure. MySQL and SQLite word it differently, so match loosely the way
// room creation does.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "constraint failed")
}
