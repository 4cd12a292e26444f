package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rishidar/freelance-connector/internal/models"
	"github.com/rishidar/freelance-connector/internal/pkg/apperror"
	"github.com/rishidar/freelance-connector/internal/validation"
)

// LeadInput - данные формы подбора исполнителей.
type LeadInput struct {
	CategoryIDs   []string
	MinBudget     int
	MaxBudget     int
	StartDate     string
	EndDate       string
	Requirements  string
	AttachmentIDs []uuid.UUID
}

// LeadService превращает заявку в сообщение и ссылку на WhatsApp.
type LeadService struct {
	counters    *CounterService
	attachments *AttachmentService
	links       *LinkBuilder
	contactName string
}

// NewLeadService создаёт сервис заявок.
func NewLeadService(counters *CounterService, attachments *AttachmentService, links *LinkBuilder, contactName string) *LeadService {
	return &LeadService{
		counters:    counters,
		attachments: attachments,
		links:       links,
		contactName: contactName,
	}
}

// Compose проверяет заявку и собирает ссылку. Вложения должны принадлежать сессии.
func (s *LeadService) Compose(ctx context.Context, session uuid.UUID, in LeadInput) (models.DeepLink, error) {
	lead, err := s.buildLead(session, in)
	if err != nil {
		return models.DeepLink{}, err
	}

	names := make([]string, 0, len(lead.CategoryIDs))
	for _, id := range lead.CategoryIDs {
		c, err := s.counters.Category(id)
		if err != nil {
			return models.DeepLink{}, err
		}
		names = append(names, c.Name)
	}

	message := LeadMessage(s.contactName, names, lead)

	files := make([]LinkFile, 0, len(lead.Attachments))
	for _, a := range lead.Attachments {
		files = append(files, LinkFile{Name: a.Name, URL: s.attachments.PublicURL(a)})
	}
	return s.links.Build(message, files...), nil
}

func (s *LeadService) buildLead(session uuid.UUID, in LeadInput) (models.Lead, error) {
	ids := dedupe(in.CategoryIDs)
	if err := validation.ValidateCategoryIDs(ids); err != nil {
		return models.Lead{}, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateBudget(in.MinBudget, in.MaxBudget); err != nil {
		return models.Lead{}, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateDateRange(in.StartDate, in.EndDate); err != nil {
		return models.Lead{}, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateRequirements(in.Requirements); err != nil {
		return models.Lead{}, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if len(in.AttachmentIDs) > validation.MaxAttachmentsPerLead {
		return models.Lead{}, ErrTooManyAttachments
	}

	attachments, err := s.attachments.Resolve(session, in.AttachmentIDs)
	if err != nil {
		return models.Lead{}, err
	}

	return models.Lead{
		CategoryIDs:  ids,
		MinBudget:    in.MinBudget,
		MaxBudget:    in.MaxBudget,
		StartDate:    strings.TrimSpace(in.StartDate),
		EndDate:      strings.TrimSpace(in.EndDate),
		Requirements: strings.TrimSpace(in.Requirements),
		Attachments:  attachments,
	}, nil
}

// LeadMessage формирует текст заявки.
func LeadMessage(contactName string, categoryNames []string, lead models.Lead) string {
	return fmt.Sprintf("Hi %s,\n\nI'd like to work with:\n%s\n\nBudget Range: ₹%d - ₹%d\n\nTimeline:\nStart: %s\nEnd: %s\n\nRequirements:\n%s",
		contactName,
		strings.Join(categoryNames, "\n"),
		lead.MinBudget, lead.MaxBudget,
		lead.StartDate, lead.EndDate,
		lead.Requirements,
	)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
