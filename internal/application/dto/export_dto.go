package dto

import "time"

// ExportItemRow fila del conteo completo para el generador de reportes
// externo. Datos planos: el formato final (Excel, PDF) no es asunto del core.
type ExportItemRow struct {
	Code        string     `json:"code"`
	Product     string     `json:"product"`
	Line        string     `json:"line"`
	SystemStock string     `json:"system_stock"`
	CountedQty  string     `json:"counted_qty"`
	Difference  string     `json:"difference"`
	Status      string     `json:"status"`
	Note        string     `json:"note,omitempty"`
	TeamName    string     `json:"team_name,omitempty"`
	CountedAt   *time.Time `json:"counted_at,omitempty"`
}

// ExportResponse paquete completo de exportación de una sesión: conteo
// completo, solo diferencias, solo pendientes e historial, más los KPI.
type ExportResponse struct {
	Session       SessionResponse    `json:"session"`
	KPI           KPIResponse        `json:"kpi"`
	Items         []ExportItemRow    `json:"items"`
	Discrepancies []ExportItemRow    `json:"discrepancies"`
	Pending       []ExportItemRow    `json:"pending"`
	History       []MovementResponse `json:"history"`
	GeneratedAt   time.Time          `json:"generated_at"`
}
