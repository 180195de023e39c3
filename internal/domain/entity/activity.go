package entity

import "time"

// Tipos de actividad registrados por el dominio.
const (
	ActivityTypeProduct  = "product"
	ActivityTypeOrder    = "order"
	ActivityTypeSupplier = "supplier"
	ActivityTypeStock    = "stock"
)

// Activity registro inmutable de un evento de dominio (append-only).
// MessageKey es una clave de plantilla (la traducción vive en la UI);
// Data son los parámetros de la plantilla.
type Activity struct {
	ID         string
	UserID     string
	Type       string
	MessageKey string
	Data       map[string]any
	Timestamp  time.Time
	Read       bool
}
