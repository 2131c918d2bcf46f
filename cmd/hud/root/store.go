package root

import (
	"context"
	"fmt"
	"os"

	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/config"
	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/engine"
	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/storage"
	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/ui"
)

// openService loads config, picks a store and returns a loaded Service.
// Store selection: remote when Supabase is fully configured, SQLite
// otherwise, and store-less (session-only, nothing saved) when disabled
// or when the database cannot be opened.
func openService(ctx context.Context) (*engine.Service, *config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Warn.Render(ui.IconWarn+" store unavailable, progress will not be saved: "+err.Error()))
		store = nil
		cleanup = func() {}
	}

	svc := engine.NewService(store, cfg.SaveKey)
	if err := svc.Load(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ui.Warn.Render(ui.IconWarn+" "+err.Error()))
	}
	return svc, cfg, cleanup, nil
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, func(), error) {
	if cfg.NoStore {
		return nil, func() {}, nil
	}
	if cfg.CloudEnabled() {
		return storage.NewRemoteStore(cfg.Supabase.URL, cfg.Supabase.ServiceRoleKey), func() {}, nil
	}

	path := cfg.DBPath
	if path == "" {
		var err error
		path, err = storage.DefaultDBPath()
		if err != nil {
			return nil, nil, err
		}
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return storage.NewSQLiteStore(db), cleanup, nil
}
