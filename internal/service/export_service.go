package service

import (
	"github.com/google/uuid"

	"github.com/rishidar/freelance-connector/internal/export"
	"github.com/rishidar/freelance-connector/internal/pkg/apperror"
)

// ErrEmptyCart возвращается при выгрузке пустой корзины.
var ErrEmptyCart = apperror.New(apperror.ErrCodeBadRequest, "корзина пуста")

// ExportService формирует PDF профилей.
type ExportService struct {
	freelancers *FreelancerService
	carts       *CartService
	contact     export.Contact
}

// NewExportService создаёт сервис выгрузки.
func NewExportService(freelancers *FreelancerService, carts *CartService, contact export.Contact) *ExportService {
	return &ExportService{freelancers: freelancers, carts: carts, contact: contact}
}

// ProfilePDF - профиль одного исполнителя.
func (s *ExportService) ProfilePDF(id string) (export.Document, error) {
	f, err := s.freelancers.Get(id)
	if err != nil {
		return export.Document{}, err
	}
	doc, err := export.Profile(f, s.contact)
	if err != nil {
		return export.Document{}, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сформировать PDF")
	}
	return doc, nil
}

// TeamPDF - общий профиль исполнителей из корзины сессии.
func (s *ExportService) TeamPDF(session uuid.UUID) (export.Document, error) {
	cart := s.carts.Get(session)
	if cart.Count == 0 {
		return export.Document{}, ErrEmptyCart
	}
	doc, err := export.Team(cart.Items, s.contact)
	if err != nil {
		return export.Document{}, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сформировать PDF")
	}
	return doc, nil
}
