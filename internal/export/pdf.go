// Package export формирует PDF профилей исполнителей.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/rishidar/freelance-connector/internal/models"
)

const (
	fontFamily = "Helvetica"
	bioWidth   = 170.0
	lineStep   = 6.0
	pageBreakY = 250.0
)

// Contact - реквизиты, печатаемые внизу документа.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// Document - готовый файл.
type Document struct {
	Filename string
	Content  []byte
}

type writer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newWriter() *writer {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return &writer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (w *writer) text(size, x, y float64, s string) {
	w.pdf.SetFont(fontFamily, "", size)
	w.pdf.Text(x, y, w.tr(s))
}

// wrapped печатает текст с переносом по ширине и возвращает y следующей строки.
func (w *writer) wrapped(size, x, y, width float64, s string) float64 {
	w.pdf.SetFont(fontFamily, "", size)
	lines := w.pdf.SplitText(w.tr(s), width)
	if len(lines) == 0 {
		return y + lineStep
	}
	for _, line := range lines {
		w.pdf.Text(x, y, line)
		y += lineStep
	}
	return y
}

func (w *writer) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("export: не удалось сформировать PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Profile формирует PDF одного исполнителя.
func Profile(f models.Freelancer, contact Contact) (Document, error) {
	w := newWriter()

	w.text(22, 20, 20, fmt.Sprintf("%s - %s", f.Name, f.Role))
	w.text(14, 20, 35, fmt.Sprintf("Status: %s", f.Availability))
	w.text(14, 20, 50, "Bio:")
	w.wrapped(12, 20, 60, bioWidth, f.Bio)

	w.text(14, 20, 80, "Skills:")
	for i, skill := range f.Skills {
		w.text(12, 25, 90+float64(i)*7, "- "+skill)
	}

	contactBlock(w, contact, 140)

	content, err := w.bytes()
	if err != nil {
		return Document{}, err
	}
	return Document{Filename: ProfileFilename(f.Name), Content: content}, nil
}

// Team формирует общий PDF для выбранных исполнителей.
func Team(list []models.Freelancer, contact Contact) (Document, error) {
	w := newWriter()

	w.text(22, 20, 20, "Team Profile")
	w.text(12, 20, 30, fmt.Sprintf("A curated team of %d freelancers selected for your project.", len(list)))

	y := 50.0
	for i, f := range list {
		if y > pageBreakY {
			w.pdf.AddPage()
			y = 20
		}

		w.text(16, 20, y, fmt.Sprintf("%d. %s - %s", i+1, f.Name, f.Role))
		y += 10
		w.text(12, 25, y, fmt.Sprintf("Status: %s", f.Availability))
		y += 10
		y = w.wrapped(12, 25, y, bioWidth-5, "Bio: "+f.Bio) + 4
		w.text(12, 25, y, "Skills:")
		y += 7
		for _, skill := range f.Skills {
			w.text(12, 30, y, "- "+skill)
			y += 7
		}
		y += 10
	}

	if y > pageBreakY {
		w.pdf.AddPage()
		y = 20
	}
	contactBlock(w, contact, y)

	content, err := w.bytes()
	if err != nil {
		return Document{}, err
	}
	return Document{Filename: TeamFilename, Content: content}, nil
}

func contactBlock(w *writer, c Contact, y float64) {
	w.text(12, 20, y, fmt.Sprintf("For more information, contact %s:", c.Name))
	w.text(12, 20, y+10, "Email: "+c.Email)
	w.text(12, 20, y+20, "Phone: "+c.Phone)
}

// TeamFilename - имя файла командного профиля.
const TeamFilename = "team_profile.pdf"

// ProfileFilename - имя файла профиля: пробелы заменяются подчёркиваниями.
func ProfileFilename(name string) string {
	return strings.Join(strings.Fields(name), "_") + "_profile.pdf"
}
