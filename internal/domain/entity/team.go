package entity

import "time"

// Team es un equipo de conteo. Los equipos no son usuarios del sistema: se
// identifican en cada envío de conteo para atribución y detección de
// conflictos entre equipos.
type Team struct {
	ID        string
	Name      string
	Members   string
	Active    bool
	CreatedAt time.Time
}
