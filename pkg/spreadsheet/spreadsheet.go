// Package spreadsheet reads and writes single-sheet xlsx workbooks.
package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of xlsx workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ErrNoSheets indicates the workbook does not contain any sheet.
var ErrNoSheets = errors.New("workbook does not contain any sheets")

// ReadRows returns every row of the first sheet. Trailing empty cells are
// trimmed by excelize, so rows may be shorter than the header.
func ReadRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

// Write renders a header row followed by rows into a workbook with one sheet
// named sheet.
func Write(sheet string, header []string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if sheet != "" && sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return nil, fmt.Errorf("rename sheet: %w", err)
		}
	} else {
		sheet = defaultSheet
	}

	headerCells := make([]interface{}, len(header))
	for i, title := range header {
		headerCells[i] = title
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
