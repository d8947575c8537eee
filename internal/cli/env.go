package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/Makepad-fr/kanban/internal/board"
	"github.com/Makepad-fr/kanban/internal/config"
	"github.com/Makepad-fr/kanban/internal/idalloc"
	"github.com/Makepad-fr/kanban/internal/model"
	"github.com/Makepad-fr/kanban/internal/store"
	"github.com/Makepad-fr/kanban/internal/store/jsonstore"
	"github.com/Makepad-fr/kanban/internal/store/redisstore"
	"github.com/Makepad-fr/kanban/internal/ui"
)

// env is everything a subcommand needs, built from config.
type env struct {
	cfg     *config.Config
	logger  *log.Logger
	store   *board.Store
	closers []io.Closer
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i].Close()
	}
}

func setup(ctx context.Context, opt Options) (*env, error) {
	cfg, err := config.Load(opt.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opt.Theme != "" {
		cfg.Theme = opt.Theme
	}
	ui.SetTheme(cfg.Theme)

	e := &env{cfg: cfg}
	logger, closer, err := newLogger(cfg.Log, opt.Debug)
	if err != nil {
		return nil, err
	}
	e.logger = logger
	if closer != nil {
		e.closers = append(e.closers, closer)
	}

	p, err := openPersister(ctx, cfg.Storage, e)
	if err != nil {
		e.Close()
		return nil, err
	}
	alloc, err := idalloc.New(model.Identifier(cfg.IDs.Min), model.Identifier(cfg.IDs.Max))
	if err != nil {
		e.Close()
		return nil, err
	}
	lo, hi := alloc.Range()
	logger.WithFields(log.Fields{"min": lo, "max": hi}).Debug("id allocator ready")

	s, err := board.Open(ctx, p, board.WithAllocator(alloc), board.WithLogger(logger.WithField("backend", cfg.Storage.Backend)))
	if err != nil {
		// the board is usable in memory; warn and carry on
		ui.Fail(err.Error())
	}
	e.store = s
	return e, nil
}

func openPersister(ctx context.Context, sc config.StorageConfig, e *env) (store.Persister, error) {
	switch sc.Backend {
	case "redis":
		rs, err := redisstore.Dial(ctx, &redis.Options{
			Addr:     sc.Redis.Addr,
			Password: sc.Redis.Password,
			DB:       sc.Redis.DB,
		}, sc.Redis.Prefix, sc.Key)
		if err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		e.closers = append(e.closers, rs)
		e.logger.WithField("key", rs.Key()).Debug("using redis storage")
		return rs, nil
	case "memory":
		return store.NewMemory(), nil
	default:
		js, err := jsonstore.New(sc.Dir, sc.Key)
		if err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		e.logger.WithField("path", js.Path()).Debug("using file storage")
		return js, nil
	}
}

// newLogger writes to the configured file; the terminal belongs to the board.
func newLogger(lc config.LogConfig, debug bool) (*log.Logger, io.Closer, error) {
	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: true})
	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("config: log.level: %w", err)
	}
	if debug {
		level = log.DebugLevel
	}
	logger.SetLevel(level)

	if lc.File == "" {
		logger.SetOutput(io.Discard)
		return logger, nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(lc.File), 0o700); err != nil {
		return nil, nil, fmt.Errorf("log dir: %w", err)
	}
	f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, f, nil
}
