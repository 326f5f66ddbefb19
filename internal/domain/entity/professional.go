package entity

import "time"

// Professional es el perfil fiscal del propio autónomo: emisor de las
// facturas INCOME y obligado tributario de los modelos. La aplicación es
// mono-profesional: existe como mucho una fila.
type Professional struct {
	ID         string
	Name       string
	TaxID      string // NIF/NIE; se valida con política estricta
	Address    string
	City       string
	PostalCode string
	Province   string
	IAEHeading string // epígrafe IAE de la actividad
	Email      string
	Phone      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
