package main

import (
	"context"
	"path/filepath"

	"clanTracker/clients/gcp"
	"clanTracker/envvars"
	"clanTracker/services/cache"
	"clanTracker/services/roster"

	"github.com/rs/zerolog/log"
)

// dependencies holds the configured backends and everything that must be
// closed on exit.
type dependencies struct {
	cache   cache.Store
	roster  roster.Source
	closers []func() error
}

func newDependencies(ctx context.Context, env envvars.Env) (*dependencies, error) {
	d := &dependencies{}
	if err := d.setupCache(ctx, env); err != nil {
		d.Close()
		return nil, err
	}
	if err := d.setupRoster(ctx, env); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

func (d *dependencies) setupCache(ctx context.Context, env envvars.Env) error {
	switch env.CacheBackend {
	case "sqlite":
		store, err := cache.NewSQLiteStore(env.CacheSQLitePath)
		if err != nil {
			return err
		}
		d.closers = append(d.closers, store.Close)
		d.cache = store
	case "gcs":
		client, err := gcp.CreateStorage(ctx)
		if err != nil {
			return err
		}
		d.closers = append(d.closers, client.Close)
		d.cache = cache.NewBucketStore(client, env.CacheBucket, env.CachePrefix)
	default:
		store, err := cache.NewFileStore(env.CacheDir)
		if err != nil {
			return err
		}
		d.cache = store
	}
	log.Info().Str("backend", env.CacheBackend).Msg("Match cache ready")
	return nil
}

func (d *dependencies) setupRoster(ctx context.Context, env envvars.Env) error {
	switch env.RosterSource {
	case "firestore":
		client, err := gcp.CreateFirestore(ctx, env.FirestoreProject)
		if err != nil {
			return err
		}
		d.closers = append(d.closers, client.Close)
		d.roster = roster.NewFirestoreSource(client, env.RosterCollection)
	case "gcs":
		client, err := gcp.CreateStorage(ctx)
		if err != nil {
			return err
		}
		d.closers = append(d.closers, client.Close)
		path := filepath.Join(filepath.Dir(env.RosterFile), filepath.Base(env.RosterObject))
		d.roster = roster.NewBucketSource(client, env.RosterBucket, env.RosterObject, path)
	default:
		d.roster = roster.NewFileSource(env.RosterFile)
	}
	return nil
}

func (d *dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			log.Warn().Err(err).Msg("Failed to close dependency")
		}
	}
}
