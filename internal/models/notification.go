package models

import "time"

type NotificationType string // Тип уведомления

const (
	NotificationInfo    NotificationType = "INFO"
	NotificationSuccess NotificationType = "SUCCESS"
	NotificationWarning NotificationType = "WARNING"
)

// Notification представляет уведомление пользователя.
type Notification struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	Title         string           `json:"title"`
	Message       string           `json:"message"`
	Type          NotificationType `json:"type"`
	Link          string           `json:"link,omitempty"`
	PetitionID    *string          `json:"petitionId,omitempty"`
	PostulationID *string          `json:"postulationId,omitempty"`
	IsRead        bool             `json:"isRead"`
	ReadAt        *time.Time       `json:"readAt,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}
