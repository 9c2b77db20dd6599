package domain

import "time"

// SlotState classifies a slot relative to the current time.
type SlotState string

const (
	SlotUpcoming  SlotState = "upcoming"
	SlotDue       SlotState = "due"
	SlotOverdue   SlotState = "overdue"
	SlotCompleted SlotState = "completed"
)

// SlotStatus is a classified slot of a started cycle.
type SlotStatus struct {
	Offset   int
	State    SlotState
	DueAt    time.Time
	Deadline time.Time
}

// NextSlot is the next slot that still accepts a reading.
type NextSlot struct {
	Offset    int
	Remaining time.Duration
	DueAt     time.Time
}
