// Package guard decide si una ruta puede mostrarse según el estado de sesión.
package guard

import "strings"

// Rutas de la aplicación.
const (
	PathLogin     = "/login"
	PathAbout     = "/about"
	PathDashboard = "/dashboard"
	PathBedarfe   = "/bedarfe"
	PathBetriebe  = "/betriebe"
)

// Session vista mínima de la sesión que necesitan los guards.
type Session interface {
	IsAuthenticated() bool
	EffectivelyAuthenticated() bool
}

// Decision resultado de un guard. Si Allow es false, Redirect indica el destino.
type Decision struct {
	Allow    bool
	Redirect string
}

func allow() Decision               { return Decision{Allow: true} }
func redirect(path string) Decision { return Decision{Redirect: path} }

// Auth permite el paso con sesión efectiva (el override "Abgemeldet" cuenta como sin sesión).
func Auth(s Session) Decision {
	if s.EffectivelyAuthenticated() {
		return allow()
	}
	return redirect(PathLogin)
}

// Dashboard permite el paso con cualquier sesión abierta, ignorando el override.
func Dashboard(s Session) Decision {
	if s.IsAuthenticated() {
		return allow()
	}
	return redirect(PathLogin)
}

// Login impide ver el login con sesión abierta.
func Login(s Session) Decision {
	if s.IsAuthenticated() {
		return redirect(PathDashboard)
	}
	return allow()
}

// Resolve aplica la tabla de rutas: "" y rutas desconocidas van al login.
func Resolve(s Session, path string) Decision {
	p := "/" + strings.Trim(path, "/")
	switch p {
	case PathLogin:
		return Login(s)
	case PathAbout:
		return allow()
	case PathDashboard:
		return Dashboard(s)
	case PathBedarfe, PathBetriebe:
		return Auth(s)
	default:
		return redirect(PathLogin)
	}
}
