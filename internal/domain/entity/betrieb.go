package entity

import "time"

// Betrieb empresa registrada en la plataforma.
type Betrieb struct {
	ID        string
	Name      string
	Email     string
	Telefon   string
	Adresse   string
	Status    BetriebStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
