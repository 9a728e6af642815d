// Package sheets 基于 Excel 工作簿实现候选信息的读写。
// 一个工作簿承载 Unfilled / Filled / Universities 三个工作表。
package sheets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Store 按路径打开工作簿，每次操作独立 open/save，避免跨调用持有文件句柄。
type Store struct {
	path string
}

// NewStore 创建工作簿存取器。
func NewStore(path string) *Store {
	return &Store{path: path}
}

// ReadAll 读取整个工作表：首行为表头，数据行不足表头宽度时补空值。
// 中间的空行原样保留，保证返回的行号与工作簿行号一一对应，
// 调用方按下标计算的删除/覆写才不会错位。
func (s *Store) ReadAll(sheet string) (headers []string, rows [][]string, err error) {
	wb, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook failed: %w", err)
	}
	defer wb.Close()

	all, err := wb.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s failed: %w", sheet, err)
	}
	if len(all) == 0 {
		return nil, nil, nil
	}

	headers = normalizeHeaders(all[0])
	for _, row := range all[1:] {
		if len(row) < len(headers) {
			row = append(row, make([]string, len(headers)-len(row))...)
		}
		rows = append(rows, row[:len(headers)])
	}
	return headers, rows, nil
}

// DeleteRows 删除数据行。索引从 1 开始计（1 为表头下第一行），从后往前删避免位移。
func (s *Store) DeleteRows(sheet string, dataRows []int) error {
	if len(dataRows) == 0 {
		return nil
	}
	wb, err := excelize.OpenFile(s.path)
	if err != nil {
		return fmt.Errorf("open workbook failed: %w", err)
	}
	defer wb.Close()

	sorted := append([]int(nil), dataRows...)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j] > sorted[i] {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	for _, r := range sorted {
		if r < 1 {
			return fmt.Errorf("invalid data row index %d", r)
		}
		// +1 跳过表头行。
		if err := wb.RemoveRow(sheet, r+1); err != nil {
			return fmt.Errorf("remove row %d failed: %w", r, err)
		}
	}
	return wb.Save()
}

// AppendRows 在工作表末尾追加数据行。
func (s *Store) AppendRows(sheet string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	wb, err := excelize.OpenFile(s.path)
	if err != nil {
		return fmt.Errorf("open workbook failed: %w", err)
	}
	defer wb.Close()

	existing, err := wb.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %s failed: %w", sheet, err)
	}
	next := len(existing) + 1
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, next+i)
		if err != nil {
			return err
		}
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("append row failed: %w", err)
		}
	}
	return wb.Save()
}

// UpdateRow 覆写指定数据行（索引从 1 开始计）。
func (s *Store) UpdateRow(sheet string, dataRow int, values []string) error {
	if dataRow < 1 {
		return errors.New("data row index must be >= 1")
	}
	wb, err := excelize.OpenFile(s.path)
	if err != nil {
		return fmt.Errorf("open workbook failed: %w", err)
	}
	defer wb.Close()

	cell, err := excelize.CoordinatesToCellName(1, dataRow+1)
	if err != nil {
		return err
	}
	if err := wb.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("update row %d failed: %w", dataRow, err)
	}
	return wb.Save()
}

func normalizeHeaders(row []string) []string {
	headers := make([]string, len(row))
	seen := make(map[string]int)
	for i, cell := range row {
		name := strings.TrimSpace(cell)
		if name == "" {
			name = fmt.Sprintf("未命名列%d", i+1)
		}
		if count, ok := seen[name]; ok {
			count++
			seen[name] = count
			name = fmt.Sprintf("%s_%d", name, count)
		} else {
			seen[name] = 0
		}
		headers[i] = name
	}
	return headers
}
