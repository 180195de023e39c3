package entity

import "time"

// User usuario de la aplicación. Todos los datos de dominio (productos,
// inventario, pedidos, proveedores, actividades) están particionados por UserID.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
