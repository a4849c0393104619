package internal

import "github.com/starford/laguz/internal/settings"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	settings *settings.Store
}

// WithSettings sets the application settings store.
func WithSettings(st *settings.Store) Option {
	return func(a *application) {
		a.settings = st
	}
}
