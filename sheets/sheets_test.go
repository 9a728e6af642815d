package sheets

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

// newWorkbook 生成只含一个 Unfilled 表的测试工作簿。
func newWorkbook(t *testing.T, rows [][]string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.xlsx")

	wb := excelize.NewFile()
	defer wb.Close()
	if err := wb.SetSheetName("Sheet1", "Unfilled"); err != nil {
		t.Fatal(err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := wb.SetSheetRow("Unfilled", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := wb.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return NewStore(path)
}

func TestReadAll(t *testing.T) {
	s := newWorkbook(t, [][]string{
		{"Source", "Deadline", "Verifier"},
		{"https://a.example", "Soon", "张三"},
		{"", "", ""},
		{"https://b.example", "2025-07-01"},
	})

	headers, rows, err := s.ReadAll("Unfilled")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !reflect.DeepEqual(headers, []string{"Source", "Deadline", "Verifier"}) {
		t.Errorf("headers = %v", headers)
	}
	// 空行保留，返回的下标与工作簿行号一一对应。
	if len(rows) != 3 {
		t.Fatalf("rows = %v", rows)
	}
	if !reflect.DeepEqual(rows[1], []string{"", "", ""}) {
		t.Errorf("空行应补齐后原样保留: %v", rows[1])
	}
	// 短行补空值到表头宽度。
	if !reflect.DeepEqual(rows[2], []string{"https://b.example", "2025-07-01", ""}) {
		t.Errorf("短行未补齐: %v", rows[2])
	}
}

func TestDeleteRowsAfterBlankRow(t *testing.T) {
	// 空行之后的行号不能错位：按 ReadAll 下标删除时必须删到目标行本身。
	s := newWorkbook(t, [][]string{
		{"Source", "Deadline"},
		{"keep", "Soon"},
		{"", ""},
		{"expired", "2020-01-01"},
	})

	_, rows, err := s.ReadAll("Unfilled")
	if err != nil {
		t.Fatal(err)
	}
	target := -1
	for i, row := range rows {
		if row[0] == "expired" {
			target = i + 1
		}
	}
	if target != 3 {
		t.Fatalf("expired 行定位错误: rows=%v", rows)
	}

	if err := s.DeleteRows("Unfilled", []int{target}); err != nil {
		t.Fatalf("DeleteRows: %v", err)
	}
	_, rows, err = s.ReadAll("Unfilled")
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range rows {
		if row[0] == "expired" {
			t.Fatalf("目标行仍在表中: %v", rows)
		}
	}
	found := false
	for _, row := range rows {
		if row[0] == "keep" {
			found = true
		}
	}
	if !found {
		t.Fatalf("keep 行被误删: %v", rows)
	}
}

func TestUpdateRowAfterBlankRow(t *testing.T) {
	s := newWorkbook(t, [][]string{
		{"Source", "Country_CN"},
		{"a", ""},
		{"", ""},
		{"b", ""},
	})

	// 下标 3 指向空行之后的 b 行。
	if err := s.UpdateRow("Unfilled", 3, []string{"b", "美国"}); err != nil {
		t.Fatalf("UpdateRow: %v", err)
	}
	_, rows, err := s.ReadAll("Unfilled")
	if err != nil {
		t.Fatal(err)
	}
	if rows[2][0] != "b" || rows[2][1] != "美国" {
		t.Errorf("覆写错位: %v", rows)
	}
	if rows[0][1] != "" {
		t.Errorf("a 行不应被改动: %v", rows)
	}
}

func TestReadAllEmptySheet(t *testing.T) {
	s := newWorkbook(t, nil)
	headers, rows, err := s.ReadAll("Unfilled")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if headers != nil || rows != nil {
		t.Errorf("空表应返回 nil: %v %v", headers, rows)
	}
}

func TestReadAllNormalizesHeaders(t *testing.T) {
	s := newWorkbook(t, [][]string{
		{" Source ", "", "Deadline", "Deadline"},
	})
	headers, _, err := s.ReadAll("Unfilled")
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	want := []string{"Source", "未命名列2", "Deadline", "Deadline_1"}
	if !reflect.DeepEqual(headers, want) {
		t.Errorf("headers = %v, want %v", headers, want)
	}
}

func TestDeleteRows(t *testing.T) {
	s := newWorkbook(t, [][]string{
		{"Source"},
		{"row1"},
		{"row2"},
		{"row3"},
	})

	// 乱序给出索引也应从后往前删。
	if err := s.DeleteRows("Unfilled", []int{1, 3}); err != nil {
		t.Fatalf("DeleteRows: %v", err)
	}
	_, rows, err := s.ReadAll("Unfilled")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0][0] != "row2" {
		t.Errorf("rows = %v", rows)
	}
}

func TestDeleteRowsRejectsHeader(t *testing.T) {
	s := newWorkbook(t, [][]string{{"Source"}, {"row1"}})
	if err := s.DeleteRows("Unfilled", []int{0}); err == nil {
		t.Error("索引 0 指向表头，应报错")
	}
}

func TestAppendRows(t *testing.T) {
	s := newWorkbook(t, [][]string{
		{"Source", "Deadline"},
		{"existing", "Soon"},
	})

	err := s.AppendRows("Unfilled", [][]string{
		{"new1", "2025-07-01"},
		{"new2", "Soon"},
	})
	if err != nil {
		t.Fatalf("AppendRows: %v", err)
	}
	_, rows, err := s.ReadAll("Unfilled")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %v", rows)
	}
	if rows[1][0] != "new1" || rows[2][0] != "new2" {
		t.Errorf("追加顺序错误: %v", rows)
	}
}

func TestUpdateRow(t *testing.T) {
	s := newWorkbook(t, [][]string{
		{"Source", "Country_CN"},
		{"a", ""},
		{"b", "美国"},
	})

	if err := s.UpdateRow("Unfilled", 1, []string{"a", "德国"}); err != nil {
		t.Fatalf("UpdateRow: %v", err)
	}
	_, rows, err := s.ReadAll("Unfilled")
	if err != nil {
		t.Fatal(err)
	}
	if rows[0][1] != "德国" {
		t.Errorf("rows = %v", rows)
	}
	if rows[1][1] != "美国" {
		t.Errorf("其他行不应被改动: %v", rows)
	}

	if err := s.UpdateRow("Unfilled", 0, nil); err == nil {
		t.Error("索引 0 应报错")
	}
}
