package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInactive          = errors.New("la cuenta no está activa")
	ErrAlreadyMarked     = errors.New("la asistencia de hoy ya fue registrada")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrNoSession         = errors.New("no hay una sesión activa")
	ErrGateway           = errors.New("error del servicio de datos")
)

// GatewayError representa un fallo del backend o del transporte detrás del Gateway.
// Message lleva el texto legible que devolvió el backend, si lo hubo.
type GatewayError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *GatewayError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: estado HTTP %d", e.Op, e.StatusCode)
	default:
		return e.Op + ": " + ErrGateway.Error()
	}
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrGateway) para cualquier *GatewayError.
func (e *GatewayError) Is(target error) bool { return target == ErrGateway }

// AsGatewayError normaliza cualquier error del Gateway a *GatewayError.
// Si err ya es un *GatewayError se devuelve tal cual.
func AsGatewayError(op string, err error) *GatewayError {
	if err == nil {
		return nil
	}
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge
	}
	return &GatewayError{Op: op, Err: err}
}
