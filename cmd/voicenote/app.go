package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nugget/voicenote/internal/compose"
	"github.com/nugget/voicenote/internal/config"
	"github.com/nugget/voicenote/internal/elements"
	"github.com/nugget/voicenote/internal/foundation"
	"github.com/nugget/voicenote/internal/library"
	"github.com/nugget/voicenote/internal/settings"
	"github.com/nugget/voicenote/internal/stacks"
)

// app bundles the stores and engine a command works against.
type app struct {
	cfg        *config.Config
	logger     *slog.Logger
	catalog    *elements.Catalog
	library    *library.Library
	stacks     *stacks.Store
	settings   *settings.Store
	engine     *compose.Engine
	foundation *foundation.Loader
}

// openApp loads configuration and opens every store. Logs go to stderr.
func openApp(configPath string, stderr io.Writer) (*app, error) {
	cfg, cfgPath, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := newLogger(stderr, level, cfg.LogFormat)
	if cfgPath != "" {
		logger.Debug("config loaded", "path", cfgPath)
	} else {
		logger.Debug("no config file found, using defaults")
	}

	lib, err := library.Open(cfg.LibraryPath(), logger.With("component", "library"))
	if err != nil {
		return nil, fmt.Errorf("open prompt library: %w", err)
	}

	catalog := elements.Default()
	engine := compose.New(catalog, lib)

	st, err := stacks.Open(cfg.StacksPath(), catalog, engine.RefResolver(), logger.With("component", "stacks"))
	if err != nil {
		return nil, fmt.Errorf("open stacks: %w", err)
	}

	dbPath := cfg.SettingsPath()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	set, err := settings.Open(dbPath, logger.With("component", "settings"))
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}

	return &app{
		cfg:        cfg,
		logger:     logger,
		catalog:    catalog,
		library:    lib,
		stacks:     st,
		settings:   set,
		engine:     engine,
		foundation: foundation.NewLoader(cfg.FoundationDir),
	}, nil
}

// Close releases the settings database.
func (a *app) Close() error {
	return a.settings.Close()
}

// output writes command results as text or indented JSON.
type output struct {
	w      io.Writer
	format string
}

func (o *output) json() bool {
	return o.format == "json"
}

func (o *output) encode(v any) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (o *output) printf(format string, a ...any) {
	fmt.Fprintf(o.w, format, a...)
}

func (o *output) println(a ...any) {
	fmt.Fprintln(o.w, a...)
}
