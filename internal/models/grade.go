package models

import "time"

// Grade представляет оценку одной стороны другой в рамках конкретной заявки.
// Используется и для оценок исполнителей, и для оценок клиентов.
type Grade struct {
	ID         string    `json:"id"`
	PetitionID string    `json:"petitionId"`
	CustomerID string    `json:"customerId"`
	ProviderID string    `json:"providerId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	IsVisible  bool      `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RateRequest представляет структуру запроса на выставление оценки.
type RateRequest struct {
	TargetID   string `json:"targetId"`
	PetitionID string `json:"petitionId"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment,omitempty"`
}

// ReviewResponse представляет отзыв для публичного профиля.
type ReviewResponse struct {
	ID           string    `json:"id"`
	ReviewerName string    `json:"reviewerName"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
