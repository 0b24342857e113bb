package utils

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SetRow 从指定行的A列开始写入一整行
func SetRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// CellName 列号从1开始
func CellName(col, row int) string {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		panic(fmt.Sprintf("invalid cell coordinates (%d,%d): %v", col, row, err))
	}
	return cell
}

// ColumnName 列号从1开始
func ColumnName(col int) string {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		panic(fmt.Sprintf("invalid column number %d: %v", col, err))
	}
	return name
}
