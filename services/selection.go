package services

// SelectionState is the hostel → floor → room cascade of the add-tenant
// wizard. Transitions are pure: changing the hostel clears the floor and
// room, changing the floor clears the room, and a room can only be chosen
// once both parents are set.
type SelectionState struct {
	HostelID string `json:"hostel_id"`
	Floor    string `json:"floor"`
	RoomID   string `json:"room_id"`
}

func (s SelectionState) WithHostel(hostelID string) SelectionState {
	if hostelID == s.HostelID {
		return s
	}
	return SelectionState{HostelID: hostelID}
}

func (s SelectionState) WithFloor(floor string) SelectionState {
	if s.HostelID == "" {
		return s
	}
	if floor == s.Floor {
		return s
	}
	return SelectionState{HostelID: s.HostelID, Floor: floor}
}

func (s SelectionState) WithRoom(roomID string) SelectionState {
	if s.HostelID == "" || s.Floor == "" {
		return s
	}
	s.RoomID = roomID
	return s
}

// Complete reports whether all three levels of the cascade are chosen.
func (s SelectionState) Complete() bool {
	return s.HostelID != "" && s.Floor != "" && s.RoomID != ""
}
