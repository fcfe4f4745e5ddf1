package ports

import (
	"context"
	"time"
)

// NotificationKind tipo de notificación visible al usuario.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

// Notification mensaje transitorio que el usuario puede descartar; expira tras Duration.
type Notification struct {
	Kind     NotificationKind
	Message  string
	Duration time.Duration
}

// Notifier muestra notificaciones al usuario.
type Notifier interface {
	Notify(n Notification)
}

// Confirmer pide confirmación interactiva (ej. antes de borrar).
type Confirmer interface {
	Confirm(ctx context.Context, message string) bool
}

// Navigator cambia de pantalla/ruta.
type Navigator interface {
	Navigate(path string)
}
