package service

import (
	"testing"
	"time"

	"medivault/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestStatusUpdateBody(t *testing.T) {
	at := time.Date(2026, 9, 10, 14, 30, 0, 0, time.UTC)
	reason := "fully booked"

	tests := []struct {
		name   string
		status string
		reason *string
		want   string
	}{
		{
			name:   "approved",
			status: models.StatusApproved,
			want:   "Dear Anna,\n\nYour appointment with Dr. House on 2026-09-10 14:30 has been APPROVED.",
		},
		{
			name:   "rejected with reason",
			status: models.StatusRejected,
			reason: &reason,
			want:   "Dear Anna,\n\nYour appointment with Dr. House on 2026-09-10 14:30 has been REJECTED. Reason: fully booked",
		},
		{
			name:   "rejected without reason",
			status: models.StatusRejected,
			want:   "Dear Anna,\n\nYour appointment with Dr. House on 2026-09-10 14:30 has been REJECTED. Reason: ",
		},
		{
			name:   "generic status",
			status: models.StatusFinished,
			want:   "Dear Anna,\n\nYour appointment status has been updated to: FINISHED.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statusUpdateBody("Anna", "House", at, tt.status, tt.reason)
			assert.Equal(t, tt.want, got)
		})
	}
}
