package payslip

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Render lays the slip out on an A4 page and returns the PDF bytes.
func Render(data Data) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(40, 10, tr("LÖNESPEC"))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("%s %d", MonthName(data.Month), data.Year))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(40, 7, tr("Namn:"))
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 7, tr(data.Namn))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(40, 7, tr("Personnummer:"))
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 7, data.Personnummer)
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(40, 7, tr("Avdelning:"))
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 7, tr(data.Avdelning))
	pdf.Ln(14)

	row := func(label, amount string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(120, 9, tr(label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 9, amount, "1", 1, "R", false, 0, "")
	}

	pdf.SetFillColor(14, 165, 233)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(120, 9, tr("Beskrivning"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 9, "Belopp (SEK)", "1", 1, "R", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	row("Bruttolön", formatSEK(data.Bruttolon), false)
	row("Kommunalskatt (32%)", "-"+formatSEK(data.Kommunal), false)
	row("Statlig skatt (20% över 540 000 kr/år)", "-"+formatSEK(data.Statlig), false)
	row("Totala avdrag", "-"+formatSEK(data.TotalSkatt), false)
	row("Nettolön", formatSEK(data.Nettolon), true)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
