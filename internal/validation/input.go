package validation

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinLeadBudget         = 200
	MaxLeadBudget         = 200000
	MaxRequirementsLength = 5000
	MaxContactMessageLen  = 5000
	MaxCategoriesPerLead  = 5
	MaxAttachmentsPerLead = 10
	DateLayout            = "2006-01-02"
	TimeLayout            = "15:04"
)

// ValidateLength проверяет длину строки в символах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateBudget проверяет диапазон бюджета заявки: от 200 до 200000, min ≤ max.
func ValidateBudget(min, max int) error {
	if min < MinLeadBudget {
		return fmt.Errorf("минимальный бюджет должен быть не менее %d", MinLeadBudget)
	}
	if max > MaxLeadBudget {
		return fmt.Errorf("максимальный бюджет должен быть не более %d", MaxLeadBudget)
	}
	if min > max {
		return fmt.Errorf("минимальный бюджет не может превышать максимальный")
	}
	return nil
}

// ParseDate разбирает дату в формате YYYY-MM-DD. Пустая строка допустима.
func ParseDate(fieldName, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s должна быть в формате ГГГГ-ММ-ДД", fieldName)
	}
	return t, nil
}

// ValidateDateRange проверяет необязательные даты начала и окончания.
func ValidateDateRange(start, end string) error {
	s, err := ParseDate("дата начала", start)
	if err != nil {
		return err
	}
	e, err := ParseDate("дата окончания", end)
	if err != nil {
		return err
	}
	if !s.IsZero() && !e.IsZero() && e.Before(s) {
		return fmt.Errorf("дата окончания не может быть раньше даты начала")
	}
	return nil
}

// ValidateMeeting проверяет обязательные дату и время встречи.
func ValidateMeeting(date, clock string) error {
	if err := ValidateNonEmpty("дата встречи", date); err != nil {
		return err
	}
	if err := ValidateNonEmpty("время встречи", clock); err != nil {
		return err
	}
	if _, err := ParseDate("дата встречи", date); err != nil {
		return err
	}
	if _, err := time.Parse(TimeLayout, strings.TrimSpace(clock)); err != nil {
		return fmt.Errorf("время встречи должно быть в формате ЧЧ:ММ")
	}
	return nil
}

// ValidateRequirements проверяет текст требований к проекту.
func ValidateRequirements(text string) error {
	return ValidateLength("описание требований", text, 0, MaxRequirementsLength)
}

// ValidateContactMessage проверяет текст сообщения со страницы контактов.
func ValidateContactMessage(text string) error {
	if err := ValidateNonEmpty("сообщение", text); err != nil {
		return err
	}
	return ValidateLength("сообщение", text, 0, MaxContactMessageLen)
}

// ValidateCategoryIDs проверяет выбор направлений в заявке.
func ValidateCategoryIDs(ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("выберите хотя бы одно направление")
	}
	if len(ids) > MaxCategoriesPerLead {
		return fmt.Errorf("можно выбрать не более %d направлений", MaxCategoriesPerLead)
	}
	return nil
}

// ValidateExternalURL проверяет абсолютный http(s) адрес.
func ValidateExternalURL(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return fmt.Errorf("некорректный URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL должен использовать http или https")
	}
	if u.Host == "" {
		return fmt.Errorf("URL должен содержать хост")
	}
	return nil
}
