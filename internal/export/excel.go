// Package export renders admin reports as xlsx workbooks.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/farwill/travel-booking/internal/model"
)

const reservationsSheet = "Reservations"

var reservationHeaders = []string{
	"S/N", "Email", "Plan", "Nights", "People Per Room", "Price", "Total", "Payment Ref", "Status", "Created At",
}

// ReservationsXLSX builds a workbook with one row per reservation and
// returns it serialized, ready to stream as an attachment.
func ReservationsXLSX(list []model.Reservation) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(reservationsSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, title := range reservationHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(reservationsSheet, cell, title)
		f.SetCellStyle(reservationsSheet, cell, cell, headerStyle)
	}

	for i, r := range list {
		row := i + 2
		values := []interface{}{
			i + 1,
			r.User.Email,
			r.Plan.Category,
			r.Plan.Nights,
			r.Plan.People,
			r.Plan.Price,
			r.Plan.Total,
			r.PaymentRef,
			r.Status,
			r.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(reservationsSheet, cell, v)
		}
	}

	// Widen the text-heavy columns so emails and references stay readable.
	f.SetColWidth(reservationsSheet, "B", "B", 32)
	f.SetColWidth(reservationsSheet, "H", "H", 24)
	f.SetColWidth(reservationsSheet, "J", "J", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf, nil
}
