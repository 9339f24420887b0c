package models

import "time"

type PetitionState string // Статус заявки

const (
	PublishedPetition   PetitionState = "PUBLISHED"   // Заявка опубликована, принимает отклики
	AdjudicatedPetition PetitionState = "ADJUDICATED" // Исполнитель выбран
	FinalizedPetition   PetitionState = "FINALIZED"   // Работа завершена
	CancelledPetition   PetitionState = "CANCELLED"   // Заявка отменена клиентом
)

// Petition представляет заявку клиента на услугу.
type Petition struct {
	ID           string        `json:"id"`
	CustomerID   string        `json:"customerId"`
	Description  string        `json:"description"`
	ProfessionID string        `json:"professionId"`
	CityID       string        `json:"cityId"`
	TypeID       string        `json:"typeId"`
	State        PetitionState `json:"state"`
	DateSince    time.Time     `json:"dateSince"`
	DateUntil    *time.Time    `json:"dateUntil,omitempty"`
	IsDeleted    bool          `json:"-"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// PetitionRequest представляет структуру запроса на создание заявки.
type PetitionRequest struct {
	Description  string     `json:"description"`
	ProfessionID string     `json:"professionId"`
	CityID       string     `json:"cityId"`
	TypeID       string     `json:"typeId"`
	DateUntil    *time.Time `json:"dateUntil,omitempty"`
}

// PetitionResponse представляет заявку с развернутыми названиями справочников.
type PetitionResponse struct {
	ID           string        `json:"id"`
	Description  string        `json:"description"`
	Profession   string        `json:"profession"`
	City         string        `json:"city"`
	Type         string        `json:"type"`
	State        PetitionState `json:"state"`
	DateSince    time.Time     `json:"dateSince"`
	DateUntil    *time.Time    `json:"dateUntil,omitempty"`
	CustomerName string        `json:"customerName"`
}

// DeadlinePassed сообщает, истек ли срок приема откликов на момент now.
// Совпадение дат (последний день) еще считается действительным.
func (p *Petition) DeadlinePassed(now time.Time) bool {
	if p.DateUntil == nil {
		return false
	}
	y1, m1, d1 := now.UTC().Date()
	y2, m2, d2 := p.DateUntil.UTC().Date()
	today := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	until := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return today.After(until)
}
