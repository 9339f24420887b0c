package models

import "time"

type PostulationState string // Статус отклика

const (
	PendingPostulation  PostulationState = "PENDING"  // Отклик ожидает решения клиента
	AcceptedPostulation PostulationState = "ACCEPTED" // Отклик принят, исполнитель выбран
	RejectedPostulation PostulationState = "REJECTED" // Отклик отклонен
)

// Postulation представляет отклик исполнителя на заявку.
type Postulation struct {
	ID         string           `json:"id"`
	PetitionID string           `json:"petitionId"`
	ProviderID string           `json:"providerId"`
	Proposal   string           `json:"proposal"`
	Budget     float64          `json:"budget"`
	State      PostulationState `json:"state"`
	IsWinner   bool             `json:"isWinner"`
	IsDeleted  bool             `json:"-"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// PostulationRequest представляет структуру запроса на создание отклика.
type PostulationRequest struct {
	PetitionID  string  `json:"petitionId"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget"`
}

// PostulationResponse представляет отклик с данными исполнителя для выдачи клиенту.
type PostulationResponse struct {
	ID             string           `json:"id"`
	PetitionID     string           `json:"petitionId"`
	ProviderID     string           `json:"providerId"`
	ProviderName   string           `json:"providerName"`
	ProviderImage  string           `json:"providerImage,omitempty"`
	ProviderRating float64          `json:"providerRating"`
	Proposal       string           `json:"proposal"`
	Budget         float64          `json:"budget"`
	State          PostulationState `json:"state"`
	IsWinner       bool             `json:"isWinner"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// AdjudicationResult содержит итог аджюдикации для рассылки уведомлений после коммита.
type AdjudicationResult struct {
	Winner          Postulation
	WinnerUserID    string
	PetitionID      string
	RejectedUserIDs []string
}
