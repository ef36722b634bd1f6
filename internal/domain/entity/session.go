package entity

import "time"

// Session representa una sesión de corte de inventario: un conjunto de ítems
// congelado al momento de la carga, sobre el cual cuentan los equipos.
type Session struct {
	ID          string
	Name        string
	Responsible string
	Warehouse   string
	Active      bool
	CreatedAt   time.Time
}
