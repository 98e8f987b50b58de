// Package docs renders the workshop's printable documents: the intake
// receipt handed to the customer, the work completion act, and the
// tamper-seal label glued onto the device casing.
package docs

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"repair-workshop-backend/config"
	"repair-workshop-backend/internal/model"
)

// Builder renders documents on the configured letterhead.
type Builder struct {
	workshop config.WorkshopConfig
}

// NewBuilder creates a document builder.
func NewBuilder(workshop config.WorkshopConfig) *Builder {
	return &Builder{workshop: workshop}
}

func (b *Builder) letterhead(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, b.workshop.Name)
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 9)
	if b.workshop.Address != "" {
		pdf.Cell(0, 5, b.workshop.Address)
		pdf.Ln(5)
	}
	if b.workshop.Phone != "" {
		pdf.Cell(0, 5, b.workshop.Phone)
		pdf.Ln(5)
	}
	pdf.Ln(4)
}

// BuildReceipt renders the intake receipt for a device.
func (b *Builder) BuildReceipt(d model.Device) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.AddPage()
	b.letterhead(pdf)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Repair intake receipt No. %s", shortID(d.ID)))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	row := func(label, value string) {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(45, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 6, value, "", "L", false)
	}
	row("Customer:", d.ClientName)
	row("Device:", d.DeviceModel)
	row("Reported fault:", orDash(d.IssueDescription))
	row("Received:", d.DateReceived.Format("2006-01-02 15:04"))
	row("Urgency:", string(d.Urgency))

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 8)
	pdf.MultiCell(0, 4, "The device is accepted for diagnostics and repair. "+
		"Please present this receipt when collecting the device.", "", "L", false)

	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(90, 6, "Accepted by: "+b.workshop.Master)
	pdf.Cell(0, 6, "Signature: ____________")

	return output(pdf)
}

// BuildCompletionAct renders the work completion act for a repaired device.
func (b *Builder) BuildCompletionAct(d model.Device) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	b.letterhead(pdf)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Work completion act No. %s", shortID(d.ID)))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(60, 7, "Customer", "1", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, d.ClientName, "1", 1, "L", false, 0, "")
	pdf.CellFormat(60, 7, "Device", "1", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, d.DeviceModel, "1", 1, "L", false, 0, "")
	pdf.CellFormat(60, 7, "Reported fault", "1", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, orDash(d.IssueDescription), "1", 1, "L", false, 0, "")
	pdf.CellFormat(60, 7, "Work performed", "1", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, orDash(d.Notes), "1", 1, "L", false, 0, "")
	pdf.CellFormat(60, 7, "Received", "1", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, d.DateReceived.Format("2006-01-02"), "1", 1, "L", false, 0, "")
	pdf.CellFormat(60, 7, "Status", "1", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, d.Status.Label(), "1", 1, "L", false, 0, "")

	pdf.Ln(10)
	pdf.MultiCell(0, 5, "The listed work has been performed in full. "+
		"The customer has no claims regarding the volume or quality of the work.", "", "L", false)

	pdf.Ln(14)
	pdf.Cell(95, 6, "Contractor: ____________")
	pdf.Cell(0, 6, "Customer: ____________")
	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(0, 5, "Issued "+time.Now().Format("2006-01-02"))

	return output(pdf)
}

// BuildSealLabel renders a small tamper-seal label for the device casing.
func (b *Builder) BuildSealLabel(d model.Device) ([]byte, error) {
	// gofpdf has no built-in "A7" size; pass its portrait dimensions (74x105 mm).
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, b.workshop.Name, "1", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "WARRANTY SEAL", "LR", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 8)
	pdf.CellFormat(0, 5, fmt.Sprintf("No. %s  /  %s", shortID(d.ID), time.Now().Format("2006-01-02")), "LR", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, "Void if broken", "LRB", 1, "C", false, 0, "")

	return output(pdf)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// shortID keeps labels readable: the first id group is unique enough for a
// document number within one workshop.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
