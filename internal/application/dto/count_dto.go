package dto

import "time"

// SubmitCountRequest envío de conteo de un equipo. Quantity se acepta como
// string para tolerar coma decimal de los lectores en es-CO.
type SubmitCountRequest struct {
	Code     string `json:"code"`
	Quantity string `json:"quantity"`
	TeamID   string `json:"team_id"`
	Note     string `json:"note"`
}

// ResolveCountRequest resolución explícita de un conteo duplicado.
// Mode: "SUMA" o "REEMPLAZO".
type ResolveCountRequest struct {
	Code     string `json:"code"`
	Quantity string `json:"quantity"`
	TeamID   string `json:"team_id"`
	Mode     string `json:"mode"`
	Note     string `json:"note"`
}

// ConflictInfo aviso de conflicto entre equipos: el último conteo del ítem
// lo hizo un equipo distinto al que envía ahora.
type ConflictInfo struct {
	TeamID   string    `json:"team_id"`
	TeamName string    `json:"team_name,omitempty"`
	Quantity string    `json:"quantity"`
	At       time.Time `json:"at"`
}

// CountOutcomeResponse resultado de un envío o resolución de conteo.
// Si Duplicate es true no se escribió nada: el cliente debe elegir modo y
// llamar al endpoint de resolución.
type CountOutcomeResponse struct {
	Code             string        `json:"code"`
	Applied          bool          `json:"applied"`
	Action           string        `json:"action,omitempty"`
	Duplicate        bool          `json:"duplicate"`
	CurrentQty       string        `json:"current_qty,omitempty"`
	SubmittedQty     string        `json:"submitted_qty"`
	SumCandidate     string        `json:"sum_candidate,omitempty"`
	ReplaceCandidate string        `json:"replace_candidate,omitempty"`
	Conflict         *ConflictInfo `json:"conflict,omitempty"`
	Warning          string        `json:"warning,omitempty"`
}

// CreateExtraItemRequest alta manual de un ítem no presente en el catálogo
// congelado (stock de sistema cero).
type CreateExtraItemRequest struct {
	Code    string `json:"code"`
	Product string `json:"product"`
	Line    string `json:"line"`
	Note    string `json:"note"`
}
