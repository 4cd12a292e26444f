package models

import "time"

// Availability описывает занятость фрилансера.
type Availability string

const (
	AvailabilityAvailable    Availability = "Available"
	AvailabilityInProgress   Availability = "In Progress"
	AvailabilityNotAvailable Availability = "Not Available"
	AvailabilityCompleted    Availability = "Completed"
)

// Freelancer описывает профиль исполнителя.
type Freelancer struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Role         string       `json:"role"`
	Availability Availability `json:"availability"`
	Skills       []string     `json:"skills"`
	Image        string       `json:"image"`
	Bio          string       `json:"bio"`
}

// LeadCategory описывает направление в форме подбора исполнителей.
type LeadCategory struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CounterKey string `json:"counter_key"`
	Icon       string `json:"icon"`
	Image      string `json:"image"`
	Count      int    `json:"count"`
}

// Counter - строка таблицы freelancer_counters.
type Counter struct {
	Key       string    `db:"key" json:"key"`
	Value     int       `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
