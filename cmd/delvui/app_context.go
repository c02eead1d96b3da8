package main

import (
	"github.com/delvui/delvui/internal/app/themes"
	"github.com/delvui/delvui/internal/logger"
	"github.com/delvui/delvui/internal/store"
)

// AppContext bundles long-lived services created at startup.
type AppContext struct {
	Store  *store.Store
	Themes *themes.Service
	Log    *logger.Logger
}

func newAppContext() (*AppContext, error) {
	s, err := store.NewBuiltin()
	if err != nil {
		return nil, err
	}

	log := logger.Nop()
	return &AppContext{
		Store:  s,
		Themes: themes.NewService(s, log),
		Log:    log,
	}, nil
}

// useLogger swaps the logger of every service.
func (a *AppContext) useLogger(log *logger.Logger) {
	a.Log = log
	a.Themes = themes.NewService(a.Store, log)
}
