package entity

// BedarfStatus estado de un Bedarf. ABGESCHLOSSEN solo lo alcanza el backend.
type BedarfStatus string

const (
	BedarfAktiv         BedarfStatus = "AKTIV"
	BedarfInaktiv       BedarfStatus = "INAKTIV"
	BedarfAbgeschlossen BedarfStatus = "ABGESCHLOSSEN"
)

// Label texto visible del estado.
func (s BedarfStatus) Label() string {
	switch s {
	case BedarfAktiv:
		return "Aktiv"
	case BedarfInaktiv:
		return "Inaktiv"
	case BedarfAbgeschlossen:
		return "Abgeschlossen"
	default:
		return "Unbekannt"
	}
}

// Toggle devuelve el estado opuesto AKTIV↔INAKTIV. ok es false para ABGESCHLOSSEN.
func (s BedarfStatus) Toggle() (next BedarfStatus, ok bool) {
	switch s {
	case BedarfAktiv:
		return BedarfInaktiv, true
	case BedarfInaktiv:
		return BedarfAktiv, true
	default:
		return s, false
	}
}

// BetriebStatus estado de un Betrieb.
type BetriebStatus string

const (
	BetriebAktiv   BetriebStatus = "AKTIV"
	BetriebInaktiv BetriebStatus = "INAKTIV"
)

// Label texto visible del estado.
func (s BetriebStatus) Label() string {
	switch s {
	case BetriebAktiv:
		return "Aktiv"
	case BetriebInaktiv:
		return "Inaktiv"
	default:
		return "Unbekannt"
	}
}

// Toggle devuelve el estado opuesto. Cualquier valor distinto de AKTIV pasa a AKTIV.
func (s BetriebStatus) Toggle() BetriebStatus {
	if s == BetriebAktiv {
		return BetriebInaktiv
	}
	return BetriebAktiv
}
