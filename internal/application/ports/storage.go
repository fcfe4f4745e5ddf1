package ports

import "context"

// Claves de almacenamiento persistente del cliente.
const (
	KeyAuthToken = "authToken"
	KeyUser      = "user"
	KeyLocalRole = "localRole"
	KeyTheme     = "theme"
)

// KeyValueStore define el puerto de persistencia duradera del cliente (DIP).
// Cada operación es atómica a nivel de una sola clave.
// La implementación vive en infrastructure/storage.
type KeyValueStore interface {
	// Get devuelve el valor y ok=false si la clave no existe.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Remove no falla si la clave no existe.
	Remove(ctx context.Context, key string) error
}

// Resetter lo implementan los almacenamientos cuyo contenido completo puede
// quedar ilegible (domain.ErrCorruptState); Reset lo descarta.
type Resetter interface {
	Reset(ctx context.Context) error
}
