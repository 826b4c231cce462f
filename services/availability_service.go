package services

import (
	"context"
	"log"
	"strings"

	"hostel-backend/models"
	"hostel-backend/store"
)

// AvailableRoom is the shape the room-selection dropdown consumes.
type AvailableRoom struct {
	ID               string `json:"id"`
	Number           string `json:"number"`
	CurrentOccupancy int    `json:"current_occupancy"`
	Capacity         int    `json:"capacity"`
	IsAvailable      bool   `json:"isAvailable"`
	HasSpace         bool   `json:"hasSpace"`
}

// AvailabilityService answers "which rooms on this hostel/floor can take
// one more tenant". Read-only; results are a point-in-time snapshot and a
// concurrent allocation may consume the last slot before the caller acts.
type AvailabilityService struct {
	Store store.RecordStore
}

func NewAvailabilityService(st store.RecordStore) *AvailabilityService {
	return &AvailabilityService{Store: st}
}

// FindAvailable lists rooms on the given hostel and floor with status
// "available" and spare capacity, in store order. An empty hostel or floor
// yields an empty list without querying: the selection wizard asks before
// both dropdowns are filled in, and that is not an error.
//
// The stored status is authoritative over the raw counter: a room flagged
// occupied or maintenance is excluded even if its counter suggests space.
func (s *AvailabilityService) FindAvailable(ctx context.Context, hostelID, floor string) ([]AvailableRoom, error) {
	if strings.TrimSpace(hostelID) == "" || strings.TrimSpace(floor) == "" {
		return []AvailableRoom{}, nil
	}

	rooms, err := s.Store.RoomsByHostelFloor(ctx, hostelID, floor)
	if err != nil {
		return nil, err
	}

	available := make([]AvailableRoom, 0, len(rooms))
	for _, room := range rooms {
		capacity, err := room.CapacityCount()
		if err != nil {
			// A malformed room must not take down the whole listing.
			log.Printf("skipping room %s from availability: %v", room.ID, err)
			continue
		}

		occupancy := room.Occupancy()
		isAvailable := room.Status == models.RoomStatusAvailable
		hasSpace := occupancy < capacity
		if !isAvailable || !hasSpace {
			continue
		}

		available = append(available, AvailableRoom{
			ID:               room.ID,
			Number:           room.Number,
			CurrentOccupancy: occupancy,
			Capacity:         capacity,
			IsAvailable:      isAvailable,
			HasSpace:         hasSpace,
		})
	}
	return available, nil
}
