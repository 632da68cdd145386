package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/janhq/camus/internal/config"
	"github.com/janhq/camus/internal/domain/artifact"
	"github.com/janhq/camus/internal/domain/conversation"
	"github.com/janhq/camus/internal/domain/session"
	"github.com/janhq/camus/internal/domain/title"
	"github.com/janhq/camus/internal/infrastructure/cache"
	"github.com/janhq/camus/internal/infrastructure/database"
	"github.com/janhq/camus/internal/infrastructure/llmprovider"
	artifactrepo "github.com/janhq/camus/internal/infrastructure/repository/artifact"
	conversationrepo "github.com/janhq/camus/internal/infrastructure/repository/conversation"
	sessionrepo "github.com/janhq/camus/internal/infrastructure/repository/session"
	toolresultrepo "github.com/janhq/camus/internal/infrastructure/repository/toolresult"
)

// runtime holds what a command needs to reach the store.
type runtime struct {
	cfg *config.Config
	db  *gorm.DB
	log zerolog.Logger
}

// newRuntime loads configuration and opens the database. Logs go to stderr so
// command output on stdout stays machine readable.
func newRuntime(cmd *cobra.Command) (*runtime, error) {
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := zerolog.InfoLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Str("service", "camus-cli").
		Logger().
		Level(level)

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    1,
		MaxOpenConns:    2,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Error,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return &runtime{cfg: cfg, db: db, log: log}, nil
}

func (r *runtime) Close() {
	if err := database.Close(r.db); err != nil {
		r.log.Warn().Err(err).Msg("close database")
	}
}

// conversationService builds a read-mostly service without cache, lock or title scheduling.
func (r *runtime) conversationService() (*conversation.Service, error) {
	sessions, err := session.NewService(sessionrepo.NewPostgresRepository(r.db), r.cfg.SessionCacheSize, r.log)
	if err != nil {
		return nil, err
	}
	artifacts := artifactrepo.NewPostgresRepository(r.db)
	return conversation.NewService(conversation.Dependencies{
		Conversations: conversationrepo.NewPostgresRepository(r.db),
		Messages:      conversationrepo.NewMessageRepository(r.db),
		Artifacts:     artifacts,
		Linker:        artifact.NewService(artifacts, cache.NoopViewCache{}, nil, r.log),
		ToolResults:   toolresultrepo.NewPostgresRepository(r.db),
		Sessions:      sessions,
	}, r.log), nil
}

// titleGenerator uses the configured model when AI titles are on, else the fallback only.
func (r *runtime) titleGenerator(invalidator title.Invalidator) *title.Generator {
	var completer title.Completer
	if r.cfg.AITitlesEnabled && r.cfg.LLMAPIURL != "" {
		completer = llmprovider.NewClient(llmprovider.Config{
			BaseURL: r.cfg.LLMAPIURL,
			APIKey:  r.cfg.LLMAPIKey,
			Model:   r.cfg.TitleModel,
			Timeout: r.cfg.LLMTimeout,
		})
	}
	return title.NewGenerator(
		conversationrepo.NewPostgresRepository(r.db),
		conversationrepo.NewMessageRepository(r.db),
		completer,
		invalidator,
		r.log,
	)
}
