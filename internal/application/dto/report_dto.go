package dto

import "time"

// KPIResponse indicadores de avance de una sesión.
type KPIResponse struct {
	Total     int64   `json:"total"`
	Counted   int64   `json:"counted"`
	Exact     int64   `json:"exact"`
	Shortages int64   `json:"shortages"`
	Overages  int64   `json:"overages"`
	Progress  float64 `json:"progress_pct"`
	Accuracy  float64 `json:"accuracy_pct"`
}

// ItemSummaryResponse ítem en conjuntos de trabajo (pendientes, diferencias,
// búsqueda). Difference solo tiene sentido si Counted es true.
type ItemSummaryResponse struct {
	Code        string `json:"code"`
	Product     string `json:"product"`
	Line        string `json:"line,omitempty"`
	SystemStock string `json:"system_stock"`
	CountedQty  string `json:"counted_qty"`
	Difference  string `json:"difference,omitempty"`
	Counted     bool   `json:"counted"`
	Status      string `json:"status,omitempty"`
	TeamID      string `json:"team_id,omitempty"`
	Note        string `json:"note,omitempty"`
}

// MovementResponse entrada del historial de movimientos.
type MovementResponse struct {
	ID        string    `json:"id"`
	ItemCode  string    `json:"item_code"`
	TeamID    string    `json:"team_id"`
	Action    string    `json:"action"`
	QtyBefore string    `json:"qty_before"`
	QtyAfter  string    `json:"qty_after"`
	CreatedAt time.Time `json:"created_at"`
}

// SnapshotResponse instantánea publicada por el planificador de
// sincronización. Stale indica que la última recomputación falló y se
// conserva el último valor bueno.
type SnapshotResponse struct {
	SessionID     string                `json:"session_id"`
	KPI           KPIResponse           `json:"kpi"`
	Pending       []ItemSummaryResponse `json:"pending"`
	Discrepancies []ItemSummaryResponse `json:"discrepancies"`
	Recent        []MovementResponse    `json:"recent"`
	GeneratedAt   time.Time             `json:"generated_at"`
	Stale         bool                  `json:"stale"`
}
