package dto

// DashboardStats contadores del dashboard.
type DashboardStats struct {
	ActiveBedarfe  int `json:"activeBedarfe"`
	TotalBedarfe   int `json:"totalBedarfe"`
	TotalBetriebe  int `json:"totalBetriebe"`
	MonthlyBedarfe int `json:"monthlyBedarfe"` // creados en los últimos 30 días

	// Fallback indica que los valores son los de reserva porque alguna consulta falló.
	Fallback bool `json:"fallback"`
}
