package models

import "fmt"

// OccupancyStatus is the four-way derived label shown to operators. The
// rooms table only stores the three-way status; StorageStatus collapses
// partially-occupied back into "available" for persistence.
type OccupancyStatus string

const (
	OccupancyAvailable         OccupancyStatus = "available"
	OccupancyPartiallyOccupied OccupancyStatus = "partially_occupied"
	OccupancyFull              OccupancyStatus = "full"
	OccupancyMaintenance       OccupancyStatus = "maintenance"
)

// InvalidRoomError marks a room record whose stored fields cannot be
// classified (non-numeric or non-positive capacity).
type InvalidRoomError struct {
	RoomID string
	Reason string
}

func (e *InvalidRoomError) Error() string {
	if e.RoomID == "" {
		return fmt.Sprintf("invalid room: %s", e.Reason)
	}
	return fmt.Sprintf("invalid room %s: %s", e.RoomID, e.Reason)
}

// ClassifyOccupancy maps a room's live counters to its occupancy label.
// The maintenance flag wins over the counters. Pure function.
func ClassifyOccupancy(occupancy, capacity int, maintenance bool) (OccupancyStatus, error) {
	if maintenance {
		return OccupancyMaintenance, nil
	}
	if capacity <= 0 {
		return "", &InvalidRoomError{Reason: fmt.Sprintf("capacity must be positive, got %d", capacity)}
	}
	switch {
	case occupancy <= 0:
		return OccupancyAvailable, nil
	case occupancy < capacity:
		return OccupancyPartiallyOccupied, nil
	default:
		return OccupancyFull, nil
	}
}

// StorageStatus maps the derived label to the three-way status column.
func (s OccupancyStatus) StorageStatus() string {
	switch s {
	case OccupancyMaintenance:
		return RoomStatusMaintenance
	case OccupancyFull:
		return RoomStatusOccupied
	default:
		return RoomStatusAvailable
	}
}
