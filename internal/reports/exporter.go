package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/AvalonleFae/ezevent/config"
)

// AttendeeExporter renders the attendee list in the requested format
type AttendeeExporter interface {
	Export(format string, eventName string, rows []AttendeeReportRow) (data []byte, filename, contentType string, err error)
	Ticket(t TicketData) ([]byte, error)
}

type attendeeExporter struct{}

func NewAttendeeExporter() AttendeeExporter {
	return &attendeeExporter{}
}

func (e *attendeeExporter) Export(format, eventName string, rows []AttendeeReportRow) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatExcel:
		data, err := e.exportExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("attendees_%s.xlsx", timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		data, err := e.exportCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("attendees_%s.csv", timestamp)
		return data, filename, "text/csv", nil

	case FormatPDF:
		data, err := e.exportPDF(eventName, rows)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("attendees_%s.pdf", timestamp)
		return data, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (e *attendeeExporter) exportCSV(rows []AttendeeReportRow) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Registration ID", "Name", "Email", "Institution", "Matric No", "Payment", "Attendance", "Checked In At", "Registered At"}
	if err := writer.Write(headers); err != nil {
		return nil, err
	}

	for _, r := range rows {
		checkedIn := ""
		if r.CheckedInAt != nil {
			checkedIn = r.CheckedInAt.Format("2006-01-02 15:04:05")
		}
		record := []string{
			strconv.FormatUint(uint64(r.RegistrationID), 10),
			r.FullName,
			r.Email,
			r.Institution,
			r.MatricNumber,
			r.PaymentStatus,
			r.AttendanceStatus,
			checkedIn,
			r.RegisteredAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}

func (e *attendeeExporter) exportExcel(rows []AttendeeReportRow) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Attendees"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"Registration ID", "Name", "Email", "Institution", "Matric No", "Payment", "Attendance", "Checked In At", "Registered At"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, r := range rows {
		row := i + 2
		checkedIn := ""
		if r.CheckedInAt != nil {
			checkedIn = r.CheckedInAt.Format("2006-01-02 15:04:05")
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r.RegistrationID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.FullName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.Email)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.Institution)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), r.MatricNumber)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), r.PaymentStatus)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), r.AttendanceStatus)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), checkedIn)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), r.RegisteredAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *attendeeExporter) exportPDF(eventName string, rows []AttendeeReportRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Attendee List - %s", eventName))
	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 9)
	widths := []float64{20, 45, 55, 45, 25, 25, 25, 35}
	headers := []string{"Reg ID", "Name", "Email", "Institution", "Matric No", "Payment", "Attendance", "Checked In At"}

	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range rows {
		checkedIn := ""
		if r.CheckedInAt != nil {
			checkedIn = r.CheckedInAt.Format("2006-01-02 15:04")
		}

		values := []string{
			strconv.FormatUint(uint64(r.RegistrationID), 10),
			r.FullName,
			r.Email,
			r.Institution,
			r.MatricNumber,
			r.PaymentStatus,
			r.AttendanceStatus,
			checkedIn,
		}
		for i, v := range values {
			pdf.CellFormat(widths[i], 6, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Ticket renders a printable registration ticket with the event QR
func (e *attendeeExporter) Ticket(t TicketData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, t.EventName)
	pdf.Ln(16)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Ticket #%d", t.RegistrationID))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Name: %s", t.ParticipantName))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", t.Email))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s", t.StartDate.Format("Mon, 2 Jan 2006 15:04")))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Venue: %s", t.Address))
	pdf.Ln(8)

	if t.Price > 0 {
		pdf.Cell(0, 8, fmt.Sprintf("Price: %.2f (%s)", t.Price, t.PaymentStatus))
	} else {
		pdf.Cell(0, 8, "Free entry")
	}
	pdf.Ln(14)

	if t.QRImagePath != "" {
		imgPath := filepath.Join(config.UploadPath, t.QRImagePath)
		pdf.Image(imgPath, 40, pdf.GetY(), 60, 60, false, "", 0, "")
		pdf.Ln(64)
		pdf.SetFont("Arial", "I", 9)
		pdf.Cell(0, 6, "Scan this code at the venue to check in")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
