package export

import (
	"testing"
	"time"

	"medivault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentsWorkbook(t *testing.T) {
	reason := "fully booked"
	at := time.Date(2026, 9, 10, 14, 30, 0, 0, time.UTC)
	views := []*models.AppointmentView{
		{
			ID:              "appt-1",
			Patient:         models.Profile{ID: "p1", Name: "Anna", Email: "anna@clinic.test"},
			Doctor:          models.Profile{ID: "d1", Name: "House", Email: "house@clinic.test"},
			AppointmentTime: at,
			Status:          models.StatusRejected,
			RejectionReason: &reason,
			CreatedAt:       at.Add(-24 * time.Hour),
			UpdatedAt:       at.Add(-12 * time.Hour),
		},
		{
			ID:              "appt-2",
			Patient:         models.Profile{ID: "p2", Name: "Boris", Email: "boris@clinic.test"},
			Doctor:          models.Profile{ID: "d1", Name: "House", Email: "house@clinic.test"},
			AppointmentTime: at.Add(time.Hour),
			Status:          models.StatusPending,
		},
	}

	f, err := AppointmentsWorkbook(views)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{appointmentsSheet}, f.GetSheetList())

	header, err := f.GetCellValue(appointmentsSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "ID", header)

	id, err := f.GetCellValue(appointmentsSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "appt-1", id)

	status, err := f.GetCellValue(appointmentsSheet, "G2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, status)

	gotReason, err := f.GetCellValue(appointmentsSheet, "H2")
	require.NoError(t, err)
	assert.Equal(t, "fully booked", gotReason)

	// Second row: no rejection reason renders as empty.
	gotReason, err = f.GetCellValue(appointmentsSheet, "H3")
	require.NoError(t, err)
	assert.Empty(t, gotReason)

	when, err := f.GetCellValue(appointmentsSheet, "F2")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-10 14:30", when)
}

func TestAppointmentsWorkbookEmpty(t *testing.T) {
	f, err := AppointmentsWorkbook(nil)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(appointmentsSheet, "J1")
	require.NoError(t, err)
	assert.Equal(t, "Updated", header)
}
