package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// Un código escaneado que no coincide con ninguna línea NO es un error:
// el resolvedor lo devuelve como resultado normal (scan.MatchResult.Found == false).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrEmptyInventory    = errors.New("el inventario teórico no tiene líneas")
	ErrAuditNotCompleted = errors.New("la auditoría aún no ha finalizado")
)
