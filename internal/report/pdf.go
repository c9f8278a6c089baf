package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"avicena/internal/domain"
)

// BuildInventoryPDF renders a drug list as a printable table.
func BuildInventoryPDF(title string, drugs []domain.Drug) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)

	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Table header
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(55, 10, "Name", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 10, "Batch", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 10, "Expiry", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 10, "Quantity", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 10, "Manufacturer", "1", 1, "C", false, 0, "")

	// Table rows
	pdf.SetFont("Arial", "", 12)
	for _, d := range drugs {
		pdf.CellFormat(55, 10, d.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 10, d.BatchNumber, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 10, d.ExpiryDate, "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 10, fmt.Sprintf("%d", d.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 10, d.Manufacturer, "1", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
