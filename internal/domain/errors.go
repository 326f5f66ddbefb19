package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                = errors.New("recurso no encontrado")
	ErrUserNotFound            = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists      = errors.New("el email ya está registrado")
	ErrInvalidInput            = errors.New("entrada inválida")
	ErrDuplicateDocumentNumber = errors.New("número de documento duplicado para ese tipo")
	ErrBlockingIssues          = errors.New("el apunte tiene incidencias bloqueantes")
	ErrAdvisoryNotConfirmed    = errors.New("el apunte tiene avisos sin confirmar")
	ErrUnauthorized            = errors.New("no autorizado")
	ErrProfileAlreadyExists    = errors.New("el perfil del profesional ya existe")
)
