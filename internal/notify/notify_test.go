package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	subject string
	data    []byte
	err     error
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.subject = subject
	f.data = data
	return nil
}

func TestConsole_Bell(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf, true).Emit(context.Background(), Alert{Title: "Reading due"})
	assert.Equal(t, "\a", buf.String())

	buf.Reset()
	NewConsole(&buf, false).Emit(context.Background(), Alert{Title: "Reading due"})
	assert.Empty(t, buf.String())
}

func TestNATS_PublishesJSON(t *testing.T) {
	pub := &fakePublisher{}
	n, err := NewNATS(pub, "mealcycle.alerts")
	require.NoError(t, err)

	alert := Alert{Title: "Reading due", Body: "60 minute reading", Urgency: UrgencyCritical, CycleID: uuid.New(), Slot: 60}
	n.Emit(context.Background(), alert)

	assert.Equal(t, "mealcycle.alerts", pub.subject)
	var got Alert
	require.NoError(t, json.Unmarshal(pub.data, &got))
	assert.Equal(t, alert.CycleID, got.CycleID)
	assert.Equal(t, 60, got.Slot)
	assert.Equal(t, UrgencyCritical, got.Urgency)
}

func TestNATS_PublishFailureIsSwallowed(t *testing.T) {
	n, err := NewNATS(&fakePublisher{err: errors.New("no responders")}, "alerts")
	require.NoError(t, err)
	assert.NotPanics(t, func() { n.Emit(context.Background(), Alert{Title: "x"}) })
}

func TestNewNATS_RequiresSubject(t *testing.T) {
	_, err := NewNATS(&fakePublisher{}, "")
	assert.Error(t, err)
}

func TestMulti_FansOut(t *testing.T) {
	var got []string
	m := Multi{
		Func(func(ctx context.Context, a Alert) { got = append(got, "a:"+a.Title) }),
		nil,
		Func(func(ctx context.Context, a Alert) { got = append(got, "b:"+a.Title) }),
	}
	m.Emit(context.Background(), Alert{Title: "due"})
	assert.Equal(t, []string{"a:due", "b:due"}, got)
}
