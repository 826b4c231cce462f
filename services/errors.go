package services

import "fmt"

// Saga stage identifiers carried by AllocationError so callers can tell
// which write failed and what state already exists.
const (
	StageTenant     = "tenant"
	StageAllocation = "allocation"
	StageRoom       = "room"
	StageRoomUpdate = "room_update"
)

// ValidationError rejects malformed input before any write is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

// AllocationError reports a failure inside the allocation saga. Stage names
// the step that failed. OrphanTenantID/OrphanAllocationID are set when a
// compensating delete could not remove rows committed by earlier steps,
// so an operator can reconcile by hand.
type AllocationError struct {
	Stage              string
	Err                error
	OrphanTenantID     string
	OrphanAllocationID string
}

func (e *AllocationError) Error() string {
	msg := fmt.Sprintf("allocation failed at stage %q: %v", e.Stage, e.Err)
	if e.OrphanTenantID != "" || e.OrphanAllocationID != "" {
		msg += fmt.Sprintf(" (manual reconciliation required: tenant=%s allocation=%s)",
			e.OrphanTenantID, e.OrphanAllocationID)
	}
	return msg
}

func (e *AllocationError) Unwrap() error { return e.Err }

// NeedsReconciliation reports whether the failure left committed rows
// behind that the workflow could not clean up.
func (e *AllocationError) NeedsReconciliation() bool {
	return e.OrphanTenantID != "" || e.OrphanAllocationID != ""
}
