package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrValidation        = errors.New("formulario inválido")
	ErrTransport         = errors.New("error de comunicación con el backend")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrNotAuthenticated  = errors.New("usuario no autenticado")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrDevOnly           = errors.New("operación disponible solo fuera de producción")
	ErrCorruptState      = errors.New("estado persistido corrupto")
)
