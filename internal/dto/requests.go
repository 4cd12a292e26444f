package dto

// LeadRequest - форма подбора исполнителей.
type LeadRequest struct {
	CategoryIDs   []string `json:"category_ids"`
	MinBudget     int      `json:"min_budget"`
	MaxBudget     int      `json:"max_budget"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	Requirements  string   `json:"requirements"`
	AttachmentIDs []string `json:"attachment_ids"`
}

// ContactMessageRequest - свободное описание проекта.
type ContactMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// MeetingRequest - запрос встречи.
type MeetingRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// CartAddRequest добавляет исполнителя в корзину.
type CartAddRequest struct {
	FreelancerID string `json:"freelancer_id" binding:"required"`
}

// AdminLoginRequest - вход администратора.
type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// CounterUpdateRequest задаёт значение счётчика исполнителей.
type CounterUpdateRequest struct {
	Count *int `json:"count" binding:"required"`
}
