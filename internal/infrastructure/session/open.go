package session

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Backends accepted by Open.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// OpenOptions selects and configures the storage behind a Store.
type OpenOptions struct {
	Backend   string
	Path      string
	Namespace string
	Redis     RedisConfig
	Mongo     MongoConfig
}

// Open builds a Store on the configured backend. The returned close
// function releases the underlying connection and is never nil.
func Open(ctx context.Context, opts OpenOptions, log zerolog.Logger) (*Store, func() error, error) {
	noop := func() error { return nil }
	log = log.With().Str("backend", opts.Backend).Logger()

	switch opts.Backend {
	case BackendMemory:
		return NewStore(NewMemoryKV(), log), noop, nil

	case BackendSQLite, "":
		db, err := OpenSQLite(ctx, opts.Path)
		if err != nil {
			return nil, noop, err
		}
		kv, err := NewSQLiteKV(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		log.Debug().Str("path", opts.Path).Msg("session store opened")
		return NewStore(kv, log), db.Close, nil

	case BackendRedis:
		client, err := DialRedis(ctx, opts.Redis)
		if err != nil {
			return nil, noop, err
		}
		log.Debug().Str("addr", opts.Redis.Addr).Msg("session store opened")
		return NewStore(NewRedisKV(client, opts.Namespace), log), client.Close, nil

	case BackendMongo:
		client, db, err := DialMongo(ctx, opts.Mongo)
		if err != nil {
			return nil, noop, err
		}
		closer := func() error {
			dctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
			defer cancel()
			return client.Disconnect(dctx)
		}
		log.Debug().Str("database", opts.Mongo.Database).Msg("session store opened")
		return NewStore(NewMongoKV(db, opts.Namespace), log), closer, nil
	}

	return nil, noop, fmt.Errorf("unknown session backend %q", opts.Backend)
}
