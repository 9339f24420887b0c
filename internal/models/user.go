package models

import "time"

type UserRole string // Роль пользователя в системе

const (
	RoleCustomer UserRole = "CUSTOMER" // Клиент, публикует заявки
	RoleProvider UserRole = "PROVIDER" // Исполнитель, откликается на заявки
)

// User представляет базовую учетную запись пользователя.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Lastname     string    `json:"lastname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	ProfileImage string    `json:"profileImage,omitempty"`
	IsActive     bool      `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Customer представляет профиль клиента, связанный 1:1 с пользователем.
type Customer struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Phone  string `json:"phone,omitempty"`
}

// Provider представляет профиль исполнителя, связанный 1:1 с пользователем.
type Provider struct {
	ID           string  `json:"id"`
	UserID       string  `json:"userId"`
	ProfessionID *string `json:"professionId,omitempty"`
	Description  string  `json:"description,omitempty"`
}

// RegisterRequest представляет структуру запроса на регистрацию.
type RegisterRequest struct {
	Name     string   `json:"name"`
	Lastname string   `json:"lastname"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     UserRole `json:"role"`
}

// LoginRequest представляет структуру запроса на вход.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse содержит выданный JWT-токен.
type AuthResponse struct {
	Token string `json:"token"`
}

// UserProfileRequest представляет структуру запроса на обновление профиля.
// Поля роли (Phone / Description / ProfessionID / CityIDs) применяются
// в зависимости от роли пользователя.
type UserProfileRequest struct {
	Name         *string  `json:"name,omitempty"`
	Lastname     *string  `json:"lastname,omitempty"`
	ProfileImage *string  `json:"profileImage,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	Description  *string  `json:"description,omitempty"`
	ProfessionID *string  `json:"professionId,omitempty"`
	CityIDs      []string `json:"cityIds,omitempty"`
}

// UserProfileResponse представляет объединенный профиль пользователя и его роли.
type UserProfileResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Lastname     string   `json:"lastname"`
	Email        string   `json:"email"`
	Role         UserRole `json:"role"`
	ProfileImage string   `json:"profileImage,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Description  string   `json:"description,omitempty"`
	Profession   string   `json:"profession,omitempty"`
	Cities       []string `json:"cities,omitempty"`
	Rating       float64  `json:"rating"`
}

// ProviderPublicProfile представляет публичную карточку исполнителя.
type ProviderPublicProfile struct {
	ProviderID   string  `json:"providerId"`
	Name         string  `json:"name"`
	Lastname     string  `json:"lastname"`
	ProfileImage string  `json:"profileImage,omitempty"`
	Profession   string  `json:"profession,omitempty"`
	Description  string  `json:"description,omitempty"`
	Rating       float64 `json:"rating"`
	ReviewCount  int     `json:"reviewCount"`
}
