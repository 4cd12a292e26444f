package service

import (
	"github.com/google/uuid"

	"github.com/rishidar/freelance-connector/internal/models"
	"github.com/rishidar/freelance-connector/internal/store"
)

// CartView - содержимое корзины сессии.
type CartView struct {
	Items []models.Freelancer `json:"items"`
	Count int                 `json:"count"`
}

// CartService управляет выбором исполнителей в рамках сессии.
type CartService struct {
	carts       *store.Carts
	freelancers *FreelancerService
}

// NewCartService создаёт сервис корзины.
func NewCartService(carts *store.Carts, freelancers *FreelancerService) *CartService {
	return &CartService{carts: carts, freelancers: freelancers}
}

// Get возвращает корзину сессии.
func (s *CartService) Get(session uuid.UUID) CartView {
	items := s.freelancers.Resolve(s.carts.For(session).Items())
	return CartView{Items: items, Count: len(items)}
}

// Add добавляет исполнителя. Повторное добавление ничего не меняет.
func (s *CartService) Add(session uuid.UUID, freelancerID string) (CartView, error) {
	if _, err := s.freelancers.Get(freelancerID); err != nil {
		return CartView{}, err
	}
	s.carts.For(session).Add(freelancerID)
	return s.Get(session), nil
}

// Remove убирает исполнителя из корзины.
func (s *CartService) Remove(session uuid.UUID, freelancerID string) CartView {
	s.carts.For(session).Remove(freelancerID)
	return s.Get(session)
}

// Clear очищает корзину.
func (s *CartService) Clear(session uuid.UUID) CartView {
	s.carts.For(session).Clear()
	return s.Get(session)
}

// Contains проверяет, выбран ли исполнитель.
func (s *CartService) Contains(session uuid.UUID, freelancerID string) bool {
	return s.carts.For(session).Contains(freelancerID)
}
