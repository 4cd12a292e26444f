// Package loader превращает табличный ресурс категории в коллекцию MediaRecord.
// Один параметризованный загрузчик обслуживает все категории: путь ресурса
// и таблица колонок приходят из models.CategoryDefinition.
package loader

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/rishidar/freelance-connector/internal/logger"
	"github.com/rishidar/freelance-connector/internal/models"
	"github.com/rishidar/freelance-connector/internal/pkg/apperror"
	"github.com/rishidar/freelance-connector/internal/sheet"
	"github.com/rishidar/freelance-connector/internal/source"
)

// Status - итог загрузки.
type Status string

const (
	StatusOK     Status = "ok"
	StatusEmpty  Status = "empty"
	StatusFailed Status = "failed"
)

// Warning - замечание к конкретной строке источника.
type Warning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Result - типизированный итог: либо коллекция (возможно пустая), либо причина сбоя.
type Result struct {
	Category string
	Records  []models.MediaRecord
	Warnings []Warning
	Err      error
}

// Status различает «пусто» и «сбой загрузки».
func (r Result) Status() Status {
	switch {
	case r.Err != nil:
		return StatusFailed
	case len(r.Records) == 0:
		return StatusEmpty
	default:
		return StatusOK
	}
}

// Reason возвращает текст причины сбоя для клиента.
func (r Result) Reason() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Interface нужен контроллеру галереи и тестам.
type Interface interface {
	Load(ctx context.Context) Result
	Category() models.CategoryDefinition
}

// Loader загружает одну категорию.
type Loader struct {
	def     models.CategoryDefinition
	fetcher source.Fetcher
}

// New создаёт загрузчик категории.
func New(def models.CategoryDefinition, fetcher source.Fetcher) *Loader {
	return &Loader{def: def, fetcher: fetcher}
}

// Category возвращает определение категории.
func (l *Loader) Category() models.CategoryDefinition {
	return l.def
}

// Load скачивает и разбирает ресурс. Метод никогда не паникует наружу и не
// возвращает ошибку отдельно: любой сбой оказывается в Result.Err, а коллекция
// при этом пуста.
func (l *Loader) Load(ctx context.Context) (res Result) {
	res.Category = l.def.Slug
	log := logger.ForCategory(l.def.Slug).WithField("resource", l.def.Resource)

	defer func() {
		if r := recover(); r != nil {
			res.Records = nil
			res.Err = apperror.Wrap(fmt.Errorf("panic: %v", r), apperror.ErrCodeParseFailed, "не удалось разобрать ресурс категории")
			log.WithField("panic", r).Error("loader: паника при разборе ресурса")
		}
	}()

	body, err := l.fetcher.Fetch(ctx, l.def.Resource)
	if err != nil {
		res.Err = apperror.Wrap(err, apperror.ErrCodeFetchFailed, "не удалось получить ресурс категории")
		log.WithError(err).Error("loader: ошибка получения ресурса")
		return res
	}
	defer body.Close()

	table, err := sheet.Parse(body)
	if err != nil {
		res.Err = apperror.Wrap(err, apperror.ErrCodeParseFailed, "не удалось разобрать ресурс категории")
		log.WithError(err).Error("loader: ошибка разбора книги")
		return res
	}

	res.Records, res.Warnings = MapTable(l.def, table)
	for _, w := range res.Warnings {
		log.WithFields(logrus.Fields{"row": w.Row}).Warn("loader: " + w.Message)
	}
	log.WithField("records", len(res.Records)).Debug("loader: категория загружена")
	return res
}

// MapTable переводит все строки листа в записи в исходном порядке.
// Строка с отсутствующими колонками всё равно даёт запись.
func MapTable(def models.CategoryDefinition, table *sheet.Table) ([]models.MediaRecord, []Warning) {
	records := make([]models.MediaRecord, 0, len(table.Rows))
	var warnings []Warning
	seen := make(map[string]int, len(table.Rows))

	for _, row := range table.Rows {
		rec, rowWarnings := MapRow(def, row)
		warnings = append(warnings, rowWarnings...)

		if first, dup := seen[rec.ID]; dup {
			warnings = append(warnings, Warning{
				Row:     row.Number,
				Message: fmt.Sprintf("идентификатор %q уже встречался в строке %d", rec.ID, first),
			})
		} else {
			seen[rec.ID] = row.Number
		}
		records = append(records, rec)
	}
	return records, warnings
}

// MapRow переводит одну строку в запись. Отсутствующий идентификатор
// заменяется на row-<номер строки листа>.
func MapRow(def models.CategoryDefinition, row sheet.Row) (models.MediaRecord, []Warning) {
	var warnings []Warning
	get := func(cols models.ColumnAliases) string {
		if len(cols) == 0 {
			return ""
		}
		v, _ := row.Lookup(cols)
		return strings.TrimSpace(v)
	}

	rec := models.MediaRecord{
		ID:          get(def.Columns.ID),
		Creator:     get(def.Columns.Creator),
		Title:       get(def.Columns.Title),
		Thumbnail:   get(def.Columns.Thumbnail),
		Link:        get(def.Columns.Link),
		Description: get(def.Columns.Description),
		Category:    get(def.Columns.Category),
		CreatedAt:   get(def.Columns.CreatedAt),
		SourceRow:   row.Number,
	}

	slots := def.Columns.Media
	rec.Media = make([]string, len(slots))
	for i, cols := range slots {
		rec.Media[i] = get(cols)
	}

	if rec.ID == "" {
		rec.ID = fmt.Sprintf("row-%d", row.Number)
		warnings = append(warnings, Warning{
			Row:     row.Number,
			Message: "нет идентификатора, присвоен " + rec.ID,
		})
	}

	return rec, warnings
}
