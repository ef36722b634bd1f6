package dto

import "time"

// CatalogRowRequest una fila del catálogo importado (colaborador de
// importación ya parseó el archivo; aquí llega como datos planos).
type CatalogRowRequest struct {
	Code    string `json:"code"`
	Product string `json:"product"`
	Line    string `json:"line"`
	Stock   string `json:"stock"`
}

// CreateSessionRequest creación de una sesión de corte con su catálogo
// congelado. Lines filtra qué líneas del catálogo se cargan (vacío = todas).
type CreateSessionRequest struct {
	Name        string              `json:"name"`
	Responsible string              `json:"responsible"`
	Warehouse   string              `json:"warehouse"`
	Lines       []string            `json:"lines,omitempty"`
	Catalog     []CatalogRowRequest `json:"catalog"`
}

// CreateSessionResponse resultado de la creación.
type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
	Loaded    int    `json:"loaded"`
	Skipped   int    `json:"skipped"`
}

// SessionResponse representación de una sesión en listados.
type SessionResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Responsible string    `json:"responsible"`
	Warehouse   string    `json:"warehouse"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// StockRowRequest una fila de refresco de stock de sistema.
type StockRowRequest struct {
	Code  string `json:"code"`
	Stock string `json:"stock"`
}

// RefreshStockRequest refresco de stock de sistema a mitad de corte. Solo
// toca stock_sistema; los conteos quedan intactos.
type RefreshStockRequest struct {
	Rows []StockRowRequest `json:"rows"`
}

// RefreshStockResponse filas actualizadas / sin correspondencia.
type RefreshStockResponse struct {
	Updated   int `json:"updated"`
	Unmatched int `json:"unmatched"`
}
