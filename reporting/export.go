package reporting

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// FinanceSheet is the sheet name of the finance workbook.
const FinanceSheet = "Sheet1"

var financeHeader = []any{
	"Level", "Period", "Recruiter", "Shifts", "Score",
	"Box 2", "Box 2*", "Box 4", "Box 4*",
	"Wages", "Income", "Bonus", "Profit",
}

// WriteFinanceWorkbook writes the tree depth-first as one row per bucket,
// followed by one row per shift under each day. Money is rounded to cents.
func WriteFinanceWorkbook(w io.Writer, root *Bucket) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(FinanceSheet, "A1", &financeHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetCellStyle(FinanceSheet, "A1", "M1", bold); err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	row := 2
	var walk func(b *Bucket) error
	walk = func(b *Bucket) error {
		if err := writeRow(f, row, bucketRow(b)); err != nil {
			return err
		}
		row++
		for _, c := range b.Children {
			if err := walk(c); err != nil {
				return err
			}
		}
		for _, s := range b.Shifts {
			name := s.RecruiterName
			if name == "" {
				name = string(s.RecruiterID)
			}
			values := []any{
				"shift", s.Date, name, 1, s.ScoreValue(),
				s.Box2Full.Int(), s.Box2Discounted.Int(), s.Box4Full.Int(), s.Box4Discounted.Int(),
				s.Wages.Float64(), s.Income.Float64(), s.Bonus.Float64(), s.Profit.Float64(),
			}
			if err := writeRow(f, row, values); err != nil {
				return err
			}
			row++
		}
		return nil
	}
	if root != nil {
		if err := walk(root); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(FinanceSheet, "B", "C", 18); err != nil {
		return fmt.Errorf("column width: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func bucketRow(b *Bucket) []any {
	t := b.Totals
	return []any{
		string(b.Level), b.Label, "", t.Shifts, t.Score,
		t.Box2Full, t.Box2Discounted, t.Box4Full, t.Box4Discounted,
		t.Wages.Float64(), t.Income.Float64(), t.Bonus.Float64(), t.Profit.Float64(),
	}
}

func writeRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(FinanceSheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}
