package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// CycleStatus is the lifecycle status of a meal cycle.
// @Description Cycle status: active until it is completed, abandoned or canceled.
type CycleStatus string

const (
	CycleStatusActive    CycleStatus = "active"
	CycleStatusCompleted CycleStatus = "completed"
	CycleStatusAbandoned CycleStatus = "abandoned"
	CycleStatusCanceled  CycleStatus = "canceled"
)

// IsTerminal reports whether no further transition may leave s.
func (s CycleStatus) IsTerminal() bool {
	return s == CycleStatusCompleted || s == CycleStatusAbandoned || s == CycleStatusCanceled
}

// ReadingKind tells where in the protocol a reading was taken.
type ReadingKind string

const (
	ReadingKindPreprandial  ReadingKind = "preprandial"
	ReadingKindPostprandial ReadingKind = "postprandial"
	ReadingKindAdhoc        ReadingKind = "adhoc"
)

// Plausible reading range in mg/dL.
const (
	MinReadingValue = 20
	MaxReadingValue = 600
)

// CollectionMealCycles is the remote collection holding MealCycle documents.
const CollectionMealCycles = "meal_cycles"

// Reading is a single measurement.
// @Description A measurement taken at baseline or at a scheduled slot.
type Reading struct {
	ID        uuid.UUID   `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Value     float64     `json:"value" example:"110"`
	Timestamp int64       `json:"timestamp" example:"1705400000000"`
	Kind      ReadingKind `json:"kind" example:"postprandial" enums:"preprandial,postprandial,adhoc"`
	Slot      *int        `json:"slot,omitempty" example:"60"`
}

// MealCycle is the document tracking one run of the sampling protocol.
type MealCycle struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID  uuid.UUID `gorm:"type:uuid;not null;index:idx_meal_cycles_owner_status" json:"owner_id"`
	UniqueID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"unique_id"`
	// StartTime is epoch milliseconds of the start event, 0 until it happens.
	StartTime int64           `gorm:"not null;default:0" json:"start_time"`
	Baseline  *Reading        `gorm:"serializer:json;type:jsonb" json:"baseline,omitempty"`
	Slots     map[int]Reading `gorm:"serializer:json;type:jsonb;not null" json:"slots"`
	Status    CycleStatus     `gorm:"type:varchar(16);not null;index:idx_meal_cycles_owner_status" json:"status"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime:false;index:idx_meal_cycles_created,sort:desc" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
}

func (MealCycle) TableName() string {
	return CollectionMealCycles
}

// Started reports whether the start event has been recorded.
func (c *MealCycle) Started() bool {
	return c.StartTime != 0
}

// StartedAt returns the start event as a time, zero when not started.
func (c *MealCycle) StartedAt() time.Time {
	if c.StartTime == 0 {
		return time.Time{}
	}
	return time.UnixMilli(c.StartTime)
}

// Clone returns a deep copy of c.
func (c *MealCycle) Clone() *MealCycle {
	if c == nil {
		return nil
	}
	out := *c
	if c.Baseline != nil {
		b := c.Baseline.clone()
		out.Baseline = &b
	}
	out.Slots = make(map[int]Reading, len(c.Slots))
	for k, v := range c.Slots {
		out.Slots[k] = v.clone()
	}
	return &out
}

func (r Reading) clone() Reading {
	if r.Slot != nil {
		s := *r.Slot
		r.Slot = &s
	}
	return r
}

// StartCycleRequest is the request body for starting a cycle.
// @Description Baseline reading that opens a new meal cycle.
type StartCycleRequest struct {
	// Baseline (preprandial) reading value in mg/dL
	BaselineValue float64 `json:"baseline_value" validate:"required,reading" example:"95" minimum:"20" maximum:"600"`
}

// SubmitReadingRequest is the request body for filling a slot.
// @Description Reading submitted for a scheduled slot.
type SubmitReadingRequest struct {
	// Slot minute-offset from the start event
	Offset int `json:"offset" validate:"required,gt=0" example:"60"`
	// Reading value in mg/dL
	Value float64 `json:"value" validate:"required,reading" example:"142" minimum:"20" maximum:"600"`
}

// SlotResponse is one slot's reading and window state.
// @Description Scheduled slot with its classification.
type SlotResponse struct {
	Offset   int       `json:"offset" example:"60"`
	State    SlotState `json:"state" example:"due" enums:"upcoming,due,overdue,completed"`
	DueAt    time.Time `json:"due_at" example:"2024-01-16T13:00:00Z"`
	Deadline time.Time `json:"deadline" example:"2024-01-16T13:10:00Z"`
	Reading  *Reading  `json:"reading,omitempty"`
}

// NextDueResponse describes the next slot to fill.
// @Description Next slot that still accepts a reading.
type NextDueResponse struct {
	Offset      int       `json:"offset" example:"90"`
	RemainingMs int64     `json:"remaining_ms" example:"125000"`
	DueAt       time.Time `json:"due_at" example:"2024-01-16T13:30:00Z"`
}

// MealCycleResponse is the response body for cycle endpoints.
// @Description Meal cycle with per-slot state.
type MealCycleResponse struct {
	ID        uuid.UUID        `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	OwnerID   uuid.UUID        `json:"owner_id" example:"660e8400-e29b-41d4-a716-446655440001"`
	UniqueID  uuid.UUID        `json:"unique_id" example:"770e8400-e29b-41d4-a716-446655440002"`
	Status    CycleStatus      `json:"status" example:"active" enums:"active,completed,abandoned,canceled"`
	StartTime int64            `json:"start_time" example:"1705410000000"`
	Baseline  *Reading         `json:"baseline,omitempty"`
	Slots     []SlotResponse   `json:"slots"`
	NextDue   *NextDueResponse `json:"next_due,omitempty"`
	CreatedAt time.Time        `json:"created_at" example:"2024-01-16T12:00:00Z"`
	UpdatedAt time.Time        `json:"updated_at" example:"2024-01-16T12:05:00Z"`
}

// ToResponse renders the cycle without slot classification; filled slots only.
func (c *MealCycle) ToResponse() MealCycleResponse {
	resp := MealCycleResponse{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		UniqueID:  c.UniqueID,
		Status:    c.Status,
		StartTime: c.StartTime,
		Baseline:  c.Baseline,
		Slots:     make([]SlotResponse, 0, len(c.Slots)),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	offsets := make([]int, 0, len(c.Slots))
	for o := range c.Slots {
		offsets = append(offsets, o)
	}
	sort.Ints(offsets)
	start := c.StartedAt()
	for _, o := range offsets {
		r := c.Slots[o]
		slot := SlotResponse{Offset: o, State: SlotCompleted, Reading: &r}
		if !start.IsZero() {
			slot.DueAt = start.Add(time.Duration(o) * time.Minute)
		}
		resp.Slots = append(resp.Slots, slot)
	}
	return resp
}

// CycleListResponse is the response body for listing past cycles.
// @Description Paginated list of meal cycles.
type CycleListResponse struct {
	Data       []MealCycleResponse `json:"data"`
	Pagination PaginationResponse  `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
// @Description Cursor-based pagination info.
type PaginationResponse struct {
	// Cursor for fetching the next page (empty if no more pages)
	NextCursor string `json:"next_cursor,omitempty" example:"eyJpZCI6IjU1MGU4NDAwLWUyOWItNDFkNC1hNzE2LTQ0NjY1NTQ0MDAwMCJ9"`
	// True if more results are available
	HasMore bool `json:"has_more" example:"true"`
}

// CycleFilter contains parameters for listing past cycles.
type CycleFilter struct {
	Limit  int
	Cursor string
	// Exclude lists cycles hidden from the page, such as ones queued for deletion.
	Exclude []uuid.UUID
}
