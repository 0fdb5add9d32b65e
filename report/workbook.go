package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/notargets/foampost/binplot"
)

const DevelopmentSheet = "Development"

// WriteWorkbook saves the report tables, one sheet each, and the development
// curves of the trials as an XLSX workbook.
func WriteWorkbook(path string, tables []Table, trials []*binplot.Trial) (err error) {
	var (
		f            = excelize.NewFile()
		headerStyle  int
		defaultSheet = f.GetSheetName(0)
	)
	defer f.Close()
	if headerStyle, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C0C0C0"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 2},
		},
	}); err != nil {
		return
	}
	for _, t := range tables {
		if err = writeTable(f, t, headerStyle); err != nil {
			return fmt.Errorf("sheet %s: %w", t.Sheet, err)
		}
	}
	if len(trials) > 0 {
		if err = writeDevelopment(f, trials, headerStyle); err != nil {
			return fmt.Errorf("sheet %s: %w", DevelopmentSheet, err)
		}
	}
	if len(tables) > 0 || len(trials) > 0 {
		if err = f.DeleteSheet(defaultSheet); err != nil {
			return
		}
		f.SetActiveSheet(0)
	}
	return f.SaveAs(path)
}

func writeTable(f *excelize.File, t Table, headerStyle int) (err error) {
	if _, err = f.NewSheet(t.Sheet); err != nil {
		return
	}
	for i, row := range t.Rows {
		var cell string
		if cell, err = excelize.CoordinatesToCellName(1, i+1); err != nil {
			return
		}
		if err = f.SetSheetRow(t.Sheet, cell, &row); err != nil {
			return
		}
	}
	if len(t.Rows) == 0 {
		return
	}
	last, _ := excelize.CoordinatesToCellName(len(t.Rows[0]), 1)
	if err = f.SetCellStyle(t.Sheet, "A1", last, headerStyle); err != nil {
		return
	}
	return f.SetColWidth(t.Sheet, "A", "A", 18)
}

// writeDevelopment lays out distance, cd and cl columns for each trial side
// by side.
func writeDevelopment(f *excelize.File, trials []*binplot.Trial, headerStyle int) (err error) {
	if _, err = f.NewSheet(DevelopmentSheet); err != nil {
		return
	}
	for n, tr := range trials {
		col := 3*n + 1
		header := []interface{}{tr.Name + " - distance", tr.Name + " - cd", tr.Name + " - cl"}
		cell, _ := excelize.CoordinatesToCellName(col, 1)
		if err = f.SetSheetRow(DevelopmentSheet, cell, &header); err != nil {
			return
		}
		for i := range tr.X {
			row := []interface{}{tr.X[i], tr.Cd[i], tr.Cl[i]}
			cell, _ = excelize.CoordinatesToCellName(col, i+2)
			if err = f.SetSheetRow(DevelopmentSheet, cell, &row); err != nil {
				return
			}
		}
	}
	last, _ := excelize.CoordinatesToCellName(3*len(trials), 1)
	return f.SetCellStyle(DevelopmentSheet, "A1", last, headerStyle)
}
