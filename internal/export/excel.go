package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"talentdash/internal/store"
)

// WriteCandidatesWorkbook renders candidates as a two-sheet XLSX report: a
// summary sheet with pipeline counts and a candidates sheet with one row
// per record, color-banded by score.
func WriteCandidatesWorkbook(w io.Writer, candidates []store.Candidate) error {
	f := excelize.NewFile()
	defer f.Close()

	const (
		summarySheet    = "Summary"
		candidatesSheet = "Candidates"
	)

	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(candidatesSheet); err != nil {
		return fmt.Errorf("create candidates sheet: %w", err)
	}

	if err := writeSummarySheet(f, summarySheet, candidates); err != nil {
		return fmt.Errorf("build summary sheet: %w", err)
	}
	if err := writeCandidatesSheet(f, candidatesSheet, candidates); err != nil {
		return fmt.Errorf("build candidates sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, sheet string, candidates []store.Candidate) error {
	_ = f.SetColWidth(sheet, "A", "A", 28)
	_ = f.SetColWidth(sheet, "B", "B", 40)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"B91C1C"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	_ = f.SetCellValue(sheet, "A1", "Candidate Pipeline Report")
	_ = f.SetCellStyle(sheet, "A1", "B1", headerStyle)
	_ = f.MergeCell(sheet, "A1", "B1")

	counts := map[string]int{}
	for _, c := range candidates {
		counts[c.Status]++
	}

	rows := [][2]any{
		{"Generated:", time.Now().Format("2006-01-02 15:04:05")},
		{"Total candidates:", len(candidates)},
		{"Pending:", counts[store.StatusPending]},
		{"Interview:", counts[store.StatusInterview]},
		{"Approved:", counts[store.StatusApproved]},
		{"Hired:", counts[store.StatusHired]},
		{"Rejected:", counts[store.StatusRejected]},
	}
	for i, row := range rows {
		cellA := fmt.Sprintf("A%d", i+3)
		cellB := fmt.Sprintf("B%d", i+3)
		_ = f.SetCellValue(sheet, cellA, row[0])
		_ = f.SetCellStyle(sheet, cellA, cellA, labelStyle)
		_ = f.SetCellValue(sheet, cellB, row[1])
	}
	return nil
}

func writeCandidatesSheet(f *excelize.File, sheet string, candidates []store.Candidate) error {
	widths := map[string]float64{"A": 8, "B": 25, "C": 28, "D": 25, "E": 10, "F": 12, "G": 40}
	for col, width := range widths {
		_ = f.SetColWidth(sheet, col, col, width)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"B91C1C"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	strongStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
	})
	midStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFEB9C"}, Pattern: 1},
	})
	weakStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})

	headers := []string{"ID", "Name", "Email", "Job", "Score", "Status", "Keywords"}
	for col, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+col)
		_ = f.SetCellValue(sheet, cell, header)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, c := range candidates {
		row := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), c.ID)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), c.Name)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), c.Email)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), c.JobTitle)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), c.Score)
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", row), c.Status)
		_ = f.SetCellValue(sheet, fmt.Sprintf("G%d", row), strings.Join(c.Keywords, ", "))

		style := weakStyle
		switch {
		case c.Score >= 80:
			style = strongStyle
		case c.Score >= 60:
			style = midStyle
		}
		_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), style)
	}

	if len(candidates) > 0 {
		_ = f.AutoFilter(sheet, fmt.Sprintf("A1:G%d", len(candidates)+1), nil)
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
