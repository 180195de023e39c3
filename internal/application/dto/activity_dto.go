package dto

import "time"

// ActivityResponse entrada del feed de actividad reciente. MessageKey es una
// clave de plantilla; la UI resuelve el texto con Data como parámetros.
type ActivityResponse struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	MessageKey string         `json:"message_key"`
	Data       map[string]any `json:"data"`
	Timestamp  time.Time      `json:"timestamp"`
	Read       bool           `json:"read"`
}

// ActivityListResponse feed de actividades, más reciente primero.
type ActivityListResponse struct {
	Items []ActivityResponse `json:"items"`
}
