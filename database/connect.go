package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Options struct {
	Driver             string
	MongoURI           string
	MongoName          string
	FirestoreProjectID string
}

// Connect opens the configured store and publishes it in DB.
func Connect(ctx context.Context, opts Options) (Store, error) {
	var (
		store Store
		err   error
	)
	switch opts.Driver {
	case "mongo", "":
		store, err = NewMongoStore(ctx, opts.MongoURI, opts.MongoName)
	case "firestore":
		store, err = NewFirestoreStore(ctx, opts.FirestoreProjectID)
	case "memory":
		store = NewMemoryStore()
	default:
		return nil, fmt.Errorf("driver de base de datos desconocido: %q", opts.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("conectar %s: %w", opts.Driver, err)
	}

	log.Info().Str("driver", opts.Driver).Msg("Base de datos conectada")
	DB = store
	return store, nil
}
