package records

import (
	"esperanza-kiosk/internal/app/models"
	"esperanza-kiosk/internal/app/services/shared/vitalsview"
	"esperanza-kiosk/internal/pkg/constvars"
	"esperanza-kiosk/internal/pkg/utils"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const patientSheetName = "Patients"

var patientExportHeader = []string{
	"Patient ID",
	"Name",
	"Sex",
	"Age",
	"Contact Number",
	"Address",
	"Recorded At",
	"Weight",
	"Height",
	"BMI",
	"Heart Rate",
	"SpO2",
	"Temperature",
	"Blood Pressure",
}

var patientExportWidths = []float64{14, 28, 10, 6, 16, 36, 20, 12, 12, 8, 12, 8, 12, 16}

type exportRow struct {
	Patient models.PatientProfile
	Latest  *models.VitalsRecord
}

func (r exportRow) values(now time.Time) []interface{} {
	record := models.VitalsRecord{}
	if r.Latest != nil {
		record = *r.Latest
	}
	vitals := vitalsview.Summary(record)

	recordedAt := constvars.PlaceholderMissingValue
	if record.RecordedAt != nil {
		recordedAt = record.RecordedAt.Format("2006-01-02 15:04")
	}

	return []interface{}{
		r.Patient.PatientID,
		r.Patient.FullName(),
		r.Patient.Sex,
		utils.CalculateAge(r.Patient.DateOfBirth, now),
		r.Patient.ContactNumber,
		r.Patient.Address,
		recordedAt,
		vitals.Weight,
		vitals.Height,
		vitals.BMI,
		vitals.HeartRate,
		vitals.SpO2,
		vitals.Temperature,
		vitals.BloodPressure,
	}
}

func buildPatientWorkbook(rows []exportRow, now time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", patientSheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]interface{}, len(patientExportHeader))
	for i, title := range patientExportHeader {
		header[i] = title
	}
	if err := f.SetSheetRow(patientSheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	lastColumn, err := excelize.ColumnNumberToName(len(patientExportHeader))
	if err != nil {
		return nil, fmt.Errorf("failed to convert column number: %w", err)
	}
	if err := f.SetCellStyle(patientSheetName, "A1", lastColumn+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}

	for i, width := range patientExportWidths {
		column, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(patientSheetName, column, column, width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		values := row.values(now)
		if err := f.SetSheetRow(patientSheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buffer.Bytes(), nil
}
