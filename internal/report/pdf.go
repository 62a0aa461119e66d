// Package report renders a dataset and its aggregate into a PDF document.
// It is a pure consumer: nothing here touches persistence.
package report

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/chemviz/equipview/internal/domain/dataset"
	"github.com/go-pdf/fpdf"
)

// Generator renders equipment reports.
type Generator struct{}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Render produces the PDF bytes for one dataset: a metadata block, the
// summary statistics, the type distribution, and the full equipment table.
func (g *Generator) Render(ds *dataset.Dataset) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Chemical Equipment Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Dataset: %s", ds.Name), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Uploaded: %s", ds.UploadedAt.Format("2006-01-02 15:04:05")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total records: %d", ds.Aggregate.TotalRecords), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	g.summaryTable(pdf, ds.Aggregate)
	g.distributionTable(pdf, ds.Aggregate.TypeDistribution)
	g.equipmentTable(pdf, ds.Records)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) summaryTable(pdf *fpdf.Fpdf, agg dataset.Aggregate) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Summary Statistics", "", 1, "L", false, 0, "")

	rows := []struct {
		label string
		value string
	}{
		{"Average Flowrate (m3/h)", fmt.Sprintf("%.2f", agg.AvgFlowrate)},
		{"Average Pressure (bar)", fmt.Sprintf("%.2f", agg.AvgPressure)},
		{"Average Temperature (C)", fmt.Sprintf("%.2f", agg.AvgTemperature)},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.CellFormat(80, 7, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, row.value, "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func (g *Generator) distributionTable(pdf *fpdf.Fpdf, distribution map[string]int) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Equipment Type Distribution", "", 1, "L", false, 0, "")

	types := make([]string, 0, len(distribution))
	for t := range distribution {
		types = append(types, t)
	}
	sort.Strings(types)

	pdf.SetFont("Helvetica", "", 10)
	for _, t := range types {
		pdf.CellFormat(80, 7, t, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%d", distribution[t]), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func (g *Generator) equipmentTable(pdf *fpdf.Fpdf, records []dataset.EquipmentRecord) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Equipment Data", "", 1, "L", false, 0, "")

	headers := []string{"Name", "Type", "Flowrate", "Pressure", "Temperature"}
	widths := []float64{45, 45, 33, 33, 34}

	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, rec := range records {
		pdf.CellFormat(widths[0], 6, rec.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, rec.Type, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, fmt.Sprintf("%.2f", rec.Flowrate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprintf("%.2f", rec.Pressure), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, fmt.Sprintf("%.2f", rec.Temperature), "1", 1, "R", false, 0, "")
	}
}
