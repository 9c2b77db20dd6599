// Package notify delivers reading-window alerts.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/blaisecz/meal-cycle/internal/logger"
	"github.com/google/uuid"
)

// Urgency ranks an alert for the presentation layer.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyNormal   Urgency = "normal"
	UrgencyCritical Urgency = "critical"
)

// Alert is a single notification. CycleID and Slot are set for slot alerts.
type Alert struct {
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	Urgency Urgency   `json:"urgency"`
	CycleID uuid.UUID `json:"cycle_id"`
	Slot    int       `json:"slot,omitempty"`
	At      time.Time `json:"at"`
}

// Notifier emits alerts. Emit is fire-and-forget; delivery failures are
// logged by the implementation.
type Notifier interface {
	Emit(ctx context.Context, alert Alert)
}

// Console plays the terminal bell and logs the alert.
type Console struct {
	out  io.Writer
	bell bool
}

// NewConsole writes the bell to out; a nil out means stderr.
func NewConsole(out io.Writer, bell bool) *Console {
	if out == nil {
		out = os.Stderr
	}
	return &Console{out: out, bell: bell}
}

func (c *Console) Emit(ctx context.Context, alert Alert) {
	if c.bell {
		fmt.Fprint(c.out, "\a")
	}
	logger.Info(alert.Title, "body", alert.Body, "urgency", alert.Urgency, "cycle", alert.CycleID, "slot", alert.Slot)
}

// Multi fans an alert out to every notifier in order.
type Multi []Notifier

func (m Multi) Emit(ctx context.Context, alert Alert) {
	for _, n := range m {
		if n != nil {
			n.Emit(ctx, alert)
		}
	}
}

// Func adapts a function to Notifier.
type Func func(ctx context.Context, alert Alert)

func (f Func) Emit(ctx context.Context, alert Alert) {
	f(ctx, alert)
}

var errNoSubject = errors.New("notify: subject is required")
