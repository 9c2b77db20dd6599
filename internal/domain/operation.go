package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OperationKind is the kind of document mutation.
type OperationKind string

const (
	OperationCreate OperationKind = "create"
	OperationUpdate OperationKind = "update"
	OperationDelete OperationKind = "delete"
)

// PendingOperation is a document mutation waiting to reach the remote store.
// Create and update payloads carry the full document snapshot.
type PendingOperation struct {
	ID         uuid.UUID       `json:"id"`
	Kind       OperationKind   `json:"kind"`
	Collection string          `json:"collection"`
	DocumentID uuid.UUID       `json:"document_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// Validate rejects operations the remote store could never apply.
func (op PendingOperation) Validate() error {
	switch op.Kind {
	case OperationCreate, OperationUpdate:
		if len(op.Payload) == 0 {
			return NewValidationError("payload", "%s operation requires a payload", op.Kind)
		}
	case OperationDelete:
	default:
		return NewValidationError("kind", "unknown operation kind %q", op.Kind)
	}
	if op.Collection != CollectionMealCycles {
		return NewValidationError("collection", "unknown collection %q", op.Collection)
	}
	if op.DocumentID == uuid.Nil {
		return NewValidationError("document_id", "is required")
	}
	return nil
}

// NewCycleOperation snapshots cycle into an operation of the given kind.
func NewCycleOperation(kind OperationKind, cycle *MealCycle, at time.Time) (PendingOperation, error) {
	op := PendingOperation{
		ID:         uuid.New(),
		Kind:       kind,
		Collection: CollectionMealCycles,
		DocumentID: cycle.ID,
		EnqueuedAt: at,
	}
	if kind != OperationDelete {
		payload, err := json.Marshal(cycle)
		if err != nil {
			return PendingOperation{}, fmt.Errorf("encode cycle %s: %w", cycle.ID, err)
		}
		op.Payload = payload
	}
	return op, nil
}

// DecodeCycle decodes a create or update payload.
func (op PendingOperation) DecodeCycle() (*MealCycle, error) {
	var cycle MealCycle
	if err := json.Unmarshal(op.Payload, &cycle); err != nil {
		return nil, fmt.Errorf("decode payload of operation %s: %w", op.ID, err)
	}
	if cycle.Slots == nil {
		cycle.Slots = map[int]Reading{}
	}
	return &cycle, nil
}
