package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-redis/redis"
	"github.com/xpanvictor/xarvis-voice/internal/config"
	"github.com/xpanvictor/xarvis-voice/internal/database"
	"github.com/xpanvictor/xarvis-voice/internal/domains/conversation"
	"github.com/xpanvictor/xarvis-voice/internal/domains/profile"
	"github.com/xpanvictor/xarvis-voice/internal/domains/session"
	convoRepo "github.com/xpanvictor/xarvis-voice/internal/repository/conversation"
	profileRepo "github.com/xpanvictor/xarvis-voice/internal/repository/profile"
	"github.com/xpanvictor/xarvis-voice/internal/secrets"
	"github.com/xpanvictor/xarvis-voice/internal/server"
	"github.com/xpanvictor/xarvis-voice/pkg/Logger"
	"gorm.io/gorm"
)

// App represents the application with all its dependencies
type App struct {
	Config *config.Settings
	Logger *Logger.Logger
	DB     *gorm.DB
	RC     *redis.Client

	Conversations *conversation.Cache
	Sessions      *session.Manager
	ServerDeps    server.Dependencies

	closers []func() error
}

// NewApp creates a new application instance with all dependencies properly wired
func NewApp(ctx context.Context, cfg *config.Settings, logger *Logger.Logger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.setupDependencies(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}

	return app, nil
}

// setupDependencies initializes all application dependencies
func (a *App) setupDependencies(ctx context.Context) error {
	// 1. fill missing provider keys from the parameter store
	if prefix := a.Config.Secrets.SSMPrefix; prefix != "" {
		client, err := secrets.NewFromAWS(ctx, a.Config.Secrets.Region)
		if err != nil {
			return err
		}
		secrets.ResolveAPIKeys(ctx, client, prefix, a.Config, a.Logger)
	}

	// 2. providers
	transcriber, err := NewTranscriber(a.Config, a.Logger)
	if err != nil {
		return err
	}
	synth, err := NewSynthesizer(a.Config, a.Logger)
	if err != nil {
		return err
	}
	generator, closeGen, err := NewGenerator(ctx, a.Config, a.Logger)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, closeGen)

	// 3. repositories
	store, err := a.conversationStore()
	if err != nil {
		return err
	}
	a.Conversations = conversation.NewCache(store, a.Config.Conversation.TTL, a.Config.Conversation.MaxPairs)

	profiles, err := a.profileProvider()
	if err != nil {
		return err
	}

	// 4. services
	a.Sessions = session.NewManager(session.Dependencies{
		Transcriber: transcriber,
		Generator:   generator,
		Synthesizer: synth,
		History:     a.Conversations,
		Profiles:    profiles,
		Logger:      a.Logger,
	})
	a.ServerDeps = server.NewServerDependencies(a.Sessions, a.Logger, a.Config)

	return nil
}

func (a *App) conversationStore() (conversation.Store, error) {
	switch kind := strings.ToLower(a.Config.Conversation.Store); kind {
	case "", "memory":
		return convoRepo.NewMemoryStore(), nil
	case "redis":
		rc, err := database.NewRedis(a.Config.Redis)
		if err != nil {
			return nil, err
		}
		a.RC = rc
		a.closers = append(a.closers, rc.Close)
		a.Logger.Infof("Conversation history in redis at %s", a.Config.Redis.Addr)
		return convoRepo.NewRedisStore(rc), nil
	default:
		return nil, fmt.Errorf("unknown conversation store %q", kind)
	}
}

func (a *App) profileProvider() (profile.ContextProvider, error) {
	if !a.Config.DB.Enabled {
		return profile.NoContext{}, nil
	}
	db, err := database.InitDB(a.Config.DB, a.Config.Debug)
	if err != nil {
		return nil, err
	}
	a.DB = db
	if sqlDB, err := db.DB(); err == nil {
		a.closers = append(a.closers, sqlDB.Close)
	}
	if err := database.MigrateDB(db); err != nil {
		return nil, err
	}
	return profile.NewService(profileRepo.NewGormSubjectRepo(db)), nil
}

// RunBackground starts the session sweeper when session.sweep_after is set.
// It returns when ctx is done.
func (a *App) RunBackground(ctx context.Context) {
	if a.Config.Session.SweepAfter <= 0 {
		return
	}
	a.Logger.Infof("Sweeping sessions older than %s every %s", a.Config.Session.SweepAfter, a.Config.Session.SweepInterval)
	a.Sessions.RunSweeper(ctx, a.Config.Session.SweepInterval, a.Config.Session.SweepAfter)
}

// Shutdown waits for running sessions, then releases connections.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.Sessions != nil {
		errs = append(errs, a.Sessions.Shutdown(ctx))
	}
	errs = append(errs, a.Close())
	return errors.Join(errs...)
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
