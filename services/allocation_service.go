package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"hostel-backend/models"
	"hostel-backend/store"
)

// TenantPreferences is the advisory wishlist captured on the add-tenant
// form. It is stored verbatim and never enforced against the chosen room.
type TenantPreferences struct {
	RoomType string  `json:"roomType,omitempty"`
	MaxRent  float64 `json:"maxRent,omitempty"`
	Floor    string  `json:"floor,omitempty"`
}

// TenantDraft carries the tenant fields of the add-tenant form.
type TenantDraft struct {
	Name             string
	Email            string
	Phone            string
	EmergencyContact string
	JoinDate         string // yyyy-mm-dd
	LeaseEnd         string // yyyy-mm-dd, optional
	Preferences      *TenantPreferences
	// Client-generated token; a resubmitted form with the same token fails
	// the tenant insert instead of creating a duplicate.
	IdempotencyKey string
}

// AllocationInput is everything the workflow needs to place one tenant
// into one room.
type AllocationInput struct {
	Tenant         TenantDraft
	RoomID         string
	StartDate      string // yyyy-mm-dd
	DurationMonths int
}

// AllocationResult reports the rows created and the room's post-update
// counters for UI refresh.
type AllocationResult struct {
	Tenant     models.Tenant         `json:"tenant"`
	Allocation models.RoomAllocation `json:"allocation"`

	RoomID        string `json:"room_id"`
	RoomOccupancy int    `json:"room_occupancy"`
	RoomStatus    string `json:"room_status"`
}

// AllocationService sequences the four writes that place a tenant into a
// room: create tenant, create allocation, re-read room, update occupancy.
// The backend offers no multi-table transaction, so the sequence runs as a
// saga: a failure after the first commit triggers compensating deletes of
// the rows created so far, and a failure on the final room update is
// surfaced with the committed ids for manual reconciliation (unwinding two
// committed rows with two more writes that can themselves fail would only
// widen the window).
type AllocationService struct {
	Store store.RecordStore
}

func NewAllocationService(st store.RecordStore) *AllocationService {
	return &AllocationService{Store: st}
}

func validateAllocationInput(in AllocationInput) error {
	if strings.TrimSpace(in.Tenant.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	email := strings.TrimSpace(in.Tenant.Email)
	if email == "" {
		return &ValidationError{Field: "email", Reason: "is required"}
	}
	if !strings.Contains(email, "@") {
		return &ValidationError{Field: "email", Reason: "is not a valid address"}
	}
	if strings.TrimSpace(in.Tenant.Phone) == "" {
		return &ValidationError{Field: "phone", Reason: "is required"}
	}
	if strings.TrimSpace(in.Tenant.EmergencyContact) == "" {
		return &ValidationError{Field: "emergency_contact", Reason: "is required"}
	}
	if _, err := time.Parse("2006-01-02", in.Tenant.JoinDate); err != nil {
		return &ValidationError{Field: "join_date", Reason: "must be yyyy-mm-dd"}
	}
	if in.Tenant.LeaseEnd != "" {
		if _, err := time.Parse("2006-01-02", in.Tenant.LeaseEnd); err != nil {
			return &ValidationError{Field: "lease_end", Reason: "must be yyyy-mm-dd"}
		}
	}
	if strings.TrimSpace(in.RoomID) == "" {
		return &ValidationError{Field: "room_id", Reason: "is required"}
	}
	if _, err := time.Parse("2006-01-02", in.StartDate); err != nil {
		return &ValidationError{Field: "start_date", Reason: "must be yyyy-mm-dd"}
	}
	if in.DurationMonths <= 0 {
		return &ValidationError{Field: "duration_months", Reason: "must be positive"}
	}
	return nil
}

// Allocate runs the allocation saga. Validation failures reject the input
// before anything is written; saga failures come back as *AllocationError
// with the stage that failed.
func (s *AllocationService) Allocate(ctx context.Context, in AllocationInput) (*AllocationResult, error) {
	if err := validateAllocationInput(in); err != nil {
		return nil, err
	}

	// Step 1: create tenant. Nothing committed yet, so a failure here
	// leaves the store untouched.
	roomID := in.RoomID
	tenant := models.Tenant{
		Name:             strings.TrimSpace(in.Tenant.Name),
		Email:            strings.TrimSpace(in.Tenant.Email),
		Phone:            strings.TrimSpace(in.Tenant.Phone),
		EmergencyContact: strings.TrimSpace(in.Tenant.EmergencyContact),
		JoinDate:         in.Tenant.JoinDate,
		LeaseEnd:         in.Tenant.LeaseEnd,
		RoomID:           &roomID,
	}
	if in.Tenant.Preferences != nil {
		raw, err := json.Marshal(in.Tenant.Preferences)
		if err != nil {
			return nil, &ValidationError{Field: "preferences", Reason: "could not be encoded"}
		}
		tenant.Preferences = raw
	}
	if key := strings.TrimSpace(in.Tenant.IdempotencyKey); key != "" {
		tenant.IdempotencyKey = &key
	}
	if err := s.Store.CreateTenant(ctx, &tenant); err != nil {
		return nil, &AllocationError{Stage: StageTenant, Err: err}
	}

	// Step 2: create the allocation row linking tenant and room.
	allocation := models.RoomAllocation{
		RoomID:    in.RoomID,
		TenantID:  tenant.ID,
		StartDate: in.StartDate,
		Duration:  in.DurationMonths,
		Status:    models.AllocationStatusActive,
	}
	if err := s.Store.CreateAllocation(ctx, &allocation); err != nil {
		return nil, s.compensate(ctx, &AllocationError{Stage: StageAllocation, Err: err}, tenant.ID, "")
	}

	// Step 3: re-read the room so the increment is based on the freshest
	// counter, not the resolver's snapshot.
	room, err := s.Store.RoomByID(ctx, in.RoomID)
	if err != nil {
		return nil, s.compensate(ctx, &AllocationError{Stage: StageRoom, Err: err}, tenant.ID, allocation.ID)
	}
	if room.Status == models.RoomStatusMaintenance {
		return nil, s.compensate(ctx, &AllocationError{
			Stage: StageRoom,
			Err:   &models.InvalidRoomError{RoomID: room.ID, Reason: "room is under maintenance"},
		}, tenant.ID, allocation.ID)
	}
	capacity, err := room.CapacityCount()
	if err != nil {
		return nil, s.compensate(ctx, &AllocationError{Stage: StageRoom, Err: err}, tenant.ID, allocation.ID)
	}
	previous := room.Occupancy()
	if previous >= capacity {
		// Another allocation took the last slot between the availability
		// snapshot and now.
		return nil, s.compensate(ctx, &AllocationError{
			Stage: StageRoom,
			Err:   &models.InvalidRoomError{RoomID: room.ID, Reason: "room is already at capacity"},
		}, tenant.ID, allocation.ID)
	}

	// Step 4: bump the counter and recompute the stored status, guarded on
	// the counter still holding the re-read value.
	occupancy := previous + 1
	label, err := models.ClassifyOccupancy(occupancy, capacity, false)
	if err != nil {
		return nil, s.compensate(ctx, &AllocationError{Stage: StageRoom, Err: err}, tenant.ID, allocation.ID)
	}
	status := label.StorageStatus()
	if err := s.Store.UpdateRoomOccupancy(ctx, room.ID, occupancy, status, &previous); err != nil {
		// Tenant and allocation are committed; do not unwind them here.
		return nil, &AllocationError{
			Stage:              StageRoomUpdate,
			Err:                err,
			OrphanTenantID:     tenant.ID,
			OrphanAllocationID: allocation.ID,
		}
	}

	return &AllocationResult{
		Tenant:        tenant,
		Allocation:    allocation,
		RoomID:        room.ID,
		RoomOccupancy: occupancy,
		RoomStatus:    status,
	}, nil
}

// compensate deletes the rows committed before the failed step,
// best-effort. Rows it cannot remove are reported on the error for manual
// reconciliation.
func (s *AllocationService) compensate(ctx context.Context, aerr *AllocationError, tenantID, allocationID string) error {
	if allocationID != "" {
		if err := s.Store.DeleteAllocation(ctx, allocationID); err != nil {
			log.Printf("compensating delete of allocation %s failed: %v", allocationID, err)
			aerr.OrphanAllocationID = allocationID
		}
	}
	if tenantID != "" {
		if err := s.Store.DeleteTenant(ctx, tenantID); err != nil {
			log.Printf("compensating delete of tenant %s failed: %v", tenantID, err)
			aerr.OrphanTenantID = tenantID
		}
	}
	return aerr
}
