package models

// Profession представляет профессию из справочника.
type Profession struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// City представляет город из справочника.
type City struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PetitionType представляет тип заявки (срочность, запрос сметы и т.п.).
type PetitionType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
