// Package sheettest собирает книги xlsx в памяти для тестов.
package sheettest

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

// Workbook строит книгу с одним листом: первая строка - headers, далее rows.
// nil в строке оставляет ячейку пустой.
func Workbook(t testing.TB, headers []string, rows ...[]any) []byte {
	t.Helper()
	return Formatted(t, headers, nil, rows...)
}

// Formatted строит книгу как Workbook и применяет к ячейкам данных числовые
// форматы: ключ - номер колонки с нуля, значение - код формата, например "#,##0".
func Formatted(t testing.TB, headers []string, formats map[int]string, rows ...[]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	fill(t, f, sheet, headers, rows)

	for col, code := range formats {
		if len(rows) == 0 {
			break
		}
		style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &code})
		if err != nil {
			t.Fatalf("sheettest: стиль %q: %v", code, err)
		}
		first, _ := excelize.CoordinatesToCellName(col+1, 2)
		last, _ := excelize.CoordinatesToCellName(col+1, len(rows)+1)
		if err := f.SetCellStyle(sheet, first, last, style); err != nil {
			t.Fatalf("sheettest: стиль колонки %d: %v", col, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("sheettest: запись книги: %v", err)
	}
	return buf.Bytes()
}

// WithExtraSheet добавляет второй лист, который загрузчик должен игнорировать.
func WithExtraSheet(t testing.TB, headers []string, rows ...[]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	fill(t, f, f.GetSheetName(0), headers, rows)

	if _, err := f.NewSheet("Ignored"); err != nil {
		t.Fatalf("sheettest: новый лист: %v", err)
	}
	set(t, f, "Ignored", 1, 1, "ID")
	set(t, f, "Ignored", 1, 2, 999)

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("sheettest: запись книги: %v", err)
	}
	return buf.Bytes()
}

func fill(t testing.TB, f *excelize.File, sheet string, headers []string, rows [][]any) {
	t.Helper()
	for col, h := range headers {
		set(t, f, sheet, col+1, 1, h)
	}
	for r, row := range rows {
		for col, v := range row {
			if v != nil {
				set(t, f, sheet, col+1, r+2, v)
			}
		}
	}
}

func set(t testing.TB, f *excelize.File, sheet string, col, row int, v any) {
	t.Helper()
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		t.Fatalf("sheettest: координаты %d,%d: %v", col, row, err)
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		t.Fatalf("sheettest: ячейка %s: %v", cell, err)
	}
}
