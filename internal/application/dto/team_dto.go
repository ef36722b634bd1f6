package dto

import "time"

// CreateTeamRequest alta de un equipo de conteo.
type CreateTeamRequest struct {
	Name    string `json:"name"`
	Members string `json:"members"`
}

// ImportTeamsRequest importación masiva de equipos (hoja EQUIPOS del
// colaborador de importación). Los nombres duplicados se omiten.
type ImportTeamsRequest struct {
	Teams []CreateTeamRequest `json:"teams"`
}

// ImportTeamsResponse resultado de la importación.
type ImportTeamsResponse struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// TeamResponse representación de un equipo en listados.
type TeamResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Members   string    `json:"members"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
