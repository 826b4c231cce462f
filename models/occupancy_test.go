package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyOccupancy(t *testing.T) {
	testCases := []struct {
		name        string
		occupancy   int
		capacity    int
		maintenance bool
		expected    OccupancyStatus
	}{
		{"empty room is available", 0, 5, false, OccupancyAvailable},
		{"room with space is partially occupied", 3, 5, false, OccupancyPartiallyOccupied},
		{"one below capacity is partially occupied", 4, 5, false, OccupancyPartiallyOccupied},
		{"at capacity is full", 5, 5, false, OccupancyFull},
		{"over capacity is full", 6, 5, false, OccupancyFull},
		{"single bed room full", 1, 1, false, OccupancyFull},
		{"maintenance wins over empty", 0, 5, true, OccupancyMaintenance},
		{"maintenance wins over full", 5, 5, true, OccupancyMaintenance},
		{"maintenance wins even with bad capacity", 2, 0, true, OccupancyMaintenance},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ClassifyOccupancy(tc.occupancy, tc.capacity, tc.maintenance)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)

			// Pure function: same inputs, same output.
			again, err := ClassifyOccupancy(tc.occupancy, tc.capacity, tc.maintenance)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestClassifyOccupancyRejectsMalformedCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		_, err := ClassifyOccupancy(1, capacity, false)
		require.Error(t, err)
		var invalid *InvalidRoomError
		assert.ErrorAs(t, err, &invalid)
	}
}

func TestOccupancyStatusStorageStatus(t *testing.T) {
	assert.Equal(t, RoomStatusAvailable, OccupancyAvailable.StorageStatus())
	// The stored three-way status collapses partially-occupied to available.
	assert.Equal(t, RoomStatusAvailable, OccupancyPartiallyOccupied.StorageStatus())
	assert.Equal(t, RoomStatusOccupied, OccupancyFull.StorageStatus())
	assert.Equal(t, RoomStatusMaintenance, OccupancyMaintenance.StorageStatus())
}

func TestRoomCapacityCount(t *testing.T) {
	room := Room{ID: "r1", Capacity: "4"}
	n, err := room.CapacityCount()
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	room.Capacity = " 2 "
	n, err = room.CapacityCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, bad := range []string{"", "abc", "0", "-3"} {
		room.Capacity = bad
		_, err := room.CapacityCount()
		var invalid *InvalidRoomError
		require.ErrorAs(t, err, &invalid, "capacity %q", bad)
		assert.Equal(t, "r1", invalid.RoomID)
	}
}

func TestRoomOccupancyNilSafe(t *testing.T) {
	room := Room{}
	assert.Equal(t, 0, room.Occupancy())

	two := 2
	room.CurrentOccupancy = &two
	assert.Equal(t, 2, room.Occupancy())
}
