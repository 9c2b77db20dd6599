package domain

import (
	"fmt"
	"time"
)

// CycleProfile is the sampling schedule a meal cycle follows.
// @Description Sampling offsets and timing windows of a meal cycle.
type CycleProfile struct {
	// Profile name
	Name string `json:"name" yaml:"name" example:"standard"`
	// Minute offsets after the start event, strictly increasing
	Offsets []int `json:"offsets" yaml:"offsets" example:"30,60,90,120,180"`
	// Minutes after a slot's due time during which a reading is still accepted
	GraceMinutes int `json:"grace_minutes" yaml:"grace_minutes" example:"10"`
	// Minutes before a slot's due time during which a reading is credited to it
	EarlyAllowanceMinutes int `json:"early_allowance_minutes" yaml:"early_allowance_minutes" example:"2"`
	// Maximum minutes since start before an unfinished cycle is abandoned
	CeilingMinutes int `json:"ceiling_minutes" yaml:"ceiling_minutes" example:"240"`
}

// Validate checks the profile's structural invariants.
func (p CycleProfile) Validate() error {
	if len(p.Offsets) == 0 {
		return NewValidationError("offsets", "at least one offset is required")
	}
	prev := 0
	for i, o := range p.Offsets {
		if o <= 0 {
			return NewValidationError("offsets", "offset %d must be positive, got %d", i, o)
		}
		if i > 0 && o <= prev {
			return NewValidationError("offsets", "offsets must be strictly increasing (%d after %d)", o, prev)
		}
		prev = o
	}
	if p.GraceMinutes <= 0 {
		return NewValidationError("grace_minutes", "must be positive")
	}
	if p.EarlyAllowanceMinutes < 0 {
		return NewValidationError("early_allowance_minutes", "must not be negative")
	}
	if last := p.LastOffset(); p.CeilingMinutes <= last+p.GraceMinutes {
		return NewValidationError("ceiling_minutes", "must exceed last offset plus grace (%d)", last+p.GraceMinutes)
	}
	return nil
}

// Clone returns a copy that shares no memory with p.
func (p CycleProfile) Clone() CycleProfile {
	c := p
	c.Offsets = append([]int(nil), p.Offsets...)
	return c
}

// HasOffset reports whether offset is one of the profile's slots.
func (p CycleProfile) HasOffset(offset int) bool {
	for _, o := range p.Offsets {
		if o == offset {
			return true
		}
	}
	return false
}

// LastOffset returns the final slot offset, or 0 for an empty profile.
func (p CycleProfile) LastOffset() int {
	if len(p.Offsets) == 0 {
		return 0
	}
	return p.Offsets[len(p.Offsets)-1]
}

func (p CycleProfile) Grace() time.Duration {
	return time.Duration(p.GraceMinutes) * time.Minute
}

func (p CycleProfile) EarlyAllowance() time.Duration {
	return time.Duration(p.EarlyAllowanceMinutes) * time.Minute
}

func (p CycleProfile) Ceiling() time.Duration {
	return time.Duration(p.CeilingMinutes) * time.Minute
}

// Window returns the accepted elapsed range [earliest, deadline) for offset.
func (p CycleProfile) Window(offset int) (earliest, deadline time.Duration) {
	at := time.Duration(offset) * time.Minute
	return at - p.EarlyAllowance(), at + p.Grace()
}

func (p CycleProfile) String() string {
	return fmt.Sprintf("%s%v grace=%dm early=%dm ceiling=%dm",
		p.Name, p.Offsets, p.GraceMinutes, p.EarlyAllowanceMinutes, p.CeilingMinutes)
}
