package export

import (
	"fmt"

	"medivault/internal/models"

	"github.com/xuri/excelize/v2"
)

const appointmentsSheet = "Appointments"

var headers = []string{"ID", "Patient", "Patient Email", "Doctor", "Doctor Email", "Time", "Status", "Rejection Reason", "Created", "Updated"}

// AppointmentsWorkbook builds an xlsx workbook from assembled appointment
// views, one row per appointment.
func AppointmentsWorkbook(views []*models.AppointmentView) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(appointmentsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(appointmentsSheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, v := range views {
		reason := ""
		if v.RejectionReason != nil {
			reason = *v.RejectionReason
		}
		row := []interface{}{
			v.ID,
			v.Patient.Name,
			v.Patient.Email,
			v.Doctor.Name,
			v.Doctor.Email,
			v.AppointmentTime.Format("2006-01-02 15:04"),
			v.Status,
			reason,
			v.CreatedAt.Format("2006-01-02 15:04"),
			v.UpdatedAt.Format("2006-01-02 15:04"),
		}
		for col, val := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(appointmentsSheet, cell, val); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
			}
		}
	}

	return f, nil
}
