package service

import (
	"fmt"
	"strings"

	"github.com/rishidar/freelance-connector/internal/models"
	"github.com/rishidar/freelance-connector/internal/pkg/apperror"
	"github.com/rishidar/freelance-connector/internal/validation"
)

// ContactService собирает ссылки со страницы контактов.
type ContactService struct {
	links       *LinkBuilder
	contactName string
}

// NewContactService создаёт сервис контактов.
func NewContactService(links *LinkBuilder, contactName string) *ContactService {
	return &ContactService{links: links, contactName: contactName}
}

// Message - описание проекта в свободной форме.
func (s *ContactService) Message(text string) (models.DeepLink, error) {
	if err := validation.ValidateContactMessage(text); err != nil {
		return models.DeepLink{}, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	msg := fmt.Sprintf("Hi %s,\n\nProject Details:\n%s", s.contactName, strings.TrimSpace(text))
	return s.links.Build(msg), nil
}

// Meeting - запрос встречи; дата и время обязательны.
func (s *ContactService) Meeting(date, clock string) (models.DeepLink, error) {
	if err := validation.ValidateMeeting(date, clock); err != nil {
		return models.DeepLink{}, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	msg := fmt.Sprintf("Hi %s,\n\nI'd like to schedule a meeting:\nDate: %s\nTime: %s",
		s.contactName, strings.TrimSpace(date), strings.TrimSpace(clock))
	return s.links.Build(msg), nil
}

// Join - заявка исполнителя на присоединение к команде.
func (s *ContactService) Join() models.DeepLink {
	return s.links.Build(fmt.Sprintf("Hi %s, I want to join as a freelancer.", s.contactName))
}

// Chat - ссылка на чат без текста.
func (s *ContactService) Chat() models.DeepLink {
	return models.DeepLink{URL: s.links.Base()}
}
