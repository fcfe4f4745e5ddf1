package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jhoicas/bau-portal/internal/application/guard"
	"github.com/jhoicas/bau-portal/internal/application/ports"
)

// streamNotifier imprime las notificaciones; la duración no aplica en terminal.
type streamNotifier struct {
	w io.Writer
}

func (n streamNotifier) Notify(x ports.Notification) {
	mark := "✓"
	if x.Kind == ports.NotifyError {
		mark = "✗"
	}
	fmt.Fprintf(n.w, "%s %s\n", mark, x.Message)
}

// promptConfirmer pregunta j/N; con --yes acepta sin preguntar.
type promptConfirmer struct {
	yes bool
	in  *bufio.Reader
	out io.Writer
}

func (p promptConfirmer) Confirm(_ context.Context, message string) bool {
	if p.yes {
		return true
	}
	fmt.Fprintf(p.out, "%s [j/N] ", message)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "j", "ja", "y", "yes":
		return true
	default:
		return false
	}
}

// Navigator traduce rutas a la orden equivalente y la sugiere al usuario.
type Navigator struct {
	w io.Writer

	mu   sync.Mutex
	last string
}

// NewNavigator escribe las sugerencias en w.
func NewNavigator(w io.Writer) *Navigator { return &Navigator{w: w} }

var _ ports.Navigator = (*Navigator)(nil)

// Navigate registra la ruta e imprime la orden sugerida.
func (n *Navigator) Navigate(path string) {
	n.mu.Lock()
	n.last = path
	n.mu.Unlock()
	if cmd := commandFor(path); cmd != "" {
		fmt.Fprintf(n.w, "Weiter mit: %s\n", cmd)
	}
}

// Last última ruta navegada; "" si ninguna.
func (n *Navigator) Last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}

func commandFor(path string) string {
	switch path {
	case guard.PathLogin:
		return "bau login"
	case guard.PathDashboard:
		return "bau dashboard"
	case guard.PathBedarfe:
		return "bau bedarfe list"
	case guard.PathBetriebe:
		return "bau betriebe list"
	case guard.PathAbout:
		return "bau about"
	default:
		return ""
	}
}
