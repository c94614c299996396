package models

import "time"

type Participant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	School    *string   `json:"school"`
	TeamName  *string   `json:"team_name"`
	CreatedAt time.Time `json:"created_at"`
}

type ProgrammingLanguage struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	IconURL      *string   `json:"icon_url"`
	Description  *string   `json:"description"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}
