package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBusPublishSubscribe(t *testing.T) {
	bus := NewEventBus()

	var got []*Event
	bus.Subscribe(EventAppointmentScheduled, func(e *Event) error {
		got = append(got, e)
		return nil
	})

	bus.Publish(&Event{Type: EventAppointmentScheduled, Payload: []byte(`{}`)})
	bus.Publish(&Event{Type: EventAppointmentDeleted, Payload: []byte(`{}`)})

	require.Len(t, got, 1)
	assert.Equal(t, EventAppointmentScheduled, got[0].Type)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBus()

	calls := 0
	handler := func(*Event) error { calls++; return nil }
	bus.Subscribe(EventAppointmentStatusChanged, handler)
	bus.Subscribe(EventAppointmentStatusChanged, handler)

	bus.Publish(&Event{Type: EventAppointmentStatusChanged})
	assert.Equal(t, 2, calls)
}

func TestPublishJSON(t *testing.T) {
	bus := NewEventBus()

	var got *Event
	bus.Subscribe(EventAppointmentStatusChanged, func(e *Event) error {
		got = e
		return nil
	})

	payload := AppointmentEventPayload{
		AppointmentID:   "appt-1",
		PatientID:       "patient-1",
		DoctorID:        "doctor-1",
		Status:          "APPROVED",
		AppointmentTime: time.Date(2026, 9, 10, 14, 30, 0, 0, time.UTC),
		ChangedBy:       "doctor-1",
	}
	require.NoError(t, bus.PublishJSON(EventAppointmentStatusChanged, payload))
	require.NotNil(t, got)

	var decoded AppointmentEventPayload
	require.NoError(t, json.Unmarshal(got.Payload, &decoded))
	assert.Equal(t, payload, decoded)
}

func TestPublishJSONNilBus(t *testing.T) {
	var bus *EventBus
	assert.NoError(t, bus.PublishJSON(EventAppointmentScheduled, map[string]string{"k": "v"}))
}
