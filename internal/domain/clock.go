package domain

import "time"

// Clock abstrae el reloj para poder fijar "hoy" en pruebas.
type Clock interface {
	Now() time.Time
}

// SystemClock usa la hora del sistema.
type SystemClock struct{}

// Now devuelve time.Now().
func (SystemClock) Now() time.Time { return time.Now() }
