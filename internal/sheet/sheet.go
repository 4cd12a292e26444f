// Package sheet читает табличные ресурсы (книги xlsx) в строки с ключами по заголовкам.
package sheet

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoSheet возвращается, если в книге нет ни одного листа.
var ErrNoSheet = errors.New("sheet: в книге нет листов")

// Row - строка листа; отсутствующие ячейки в ней не представлены.
type Row struct {
	Number int
	cells  map[string]string
	// порядок колонок для поиска без учёта регистра
	order []string
}

// NewRow собирает строку из готовых значений (удобно в тестах и при ручном вводе).
// Колонки упорядочиваются по имени.
func NewRow(number int, cells map[string]string) Row {
	copied := make(map[string]string, len(cells))
	order := make([]string, 0, len(cells))
	for k, v := range cells {
		copied[k] = v
		order = append(order, k)
	}
	sort.Strings(order)
	return Row{Number: number, cells: copied, order: order}
}

// Get возвращает значение колонки и признак её присутствия в строке.
func (r Row) Get(column string) (string, bool) {
	v, ok := r.cells[column]
	return v, ok
}

// Lookup ищет первую присутствующую колонку из списка: сначала точное имя,
// затем без учёта регистра в порядке колонок листа.
func (r Row) Lookup(columns []string) (string, bool) {
	for _, name := range columns {
		if v, ok := r.cells[name]; ok {
			return v, true
		}
	}
	for _, name := range columns {
		for _, key := range r.order {
			v, ok := r.cells[key]
			if ok && strings.EqualFold(key, name) {
				return v, true
			}
		}
	}
	return "", false
}

// Len возвращает число заполненных ячеек.
func (r Row) Len() int {
	return len(r.cells)
}

// Table - результат чтения первого листа книги.
type Table struct {
	Sheet   string
	Headers []string
	Rows    []Row
}

// Parse открывает книгу и читает только первый лист. Первая строка листа
// считается заголовком, полностью пустые строки пропускаются.
// Значения читаются без числового формата ячейки: 7 в формате "0.00" остаётся "7".
func Parse(r io.Reader) (*Table, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("sheet: не удалось открыть книгу: %w", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}
	name := sheets[0]

	raw, err := book.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("sheet: не удалось прочитать лист %q: %w", name, err)
	}

	table := &Table{Sheet: name}
	if len(raw) == 0 {
		return table, nil
	}

	table.Headers = headers(raw[0])
	for i, cells := range raw[1:] {
		row := Row{Number: i + 2, cells: make(map[string]string, len(cells)), order: table.Headers}
		for col, value := range cells {
			if col >= len(table.Headers) || table.Headers[col] == "" {
				continue
			}
			if value == "" {
				continue
			}
			row.cells[table.Headers[col]] = value
		}
		if row.Len() == 0 {
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// headers нормализует строку заголовков: обрезает пробелы, повторяющиеся
// имена получают суффикс _1, _2 и так далее.
func headers(raw []string) []string {
	out := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if n, dup := seen[h]; dup {
			seen[h] = n + 1
			h = fmt.Sprintf("%s_%d", h, n+1)
		} else {
			seen[h] = 0
		}
		out[i] = h
	}
	return out
}
