//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/janhq/camus/internal/config"
	"github.com/janhq/camus/internal/domain/artifact"
	"github.com/janhq/camus/internal/domain/conversation"
	"github.com/janhq/camus/internal/domain/share"
	"github.com/janhq/camus/internal/domain/title"
	"github.com/janhq/camus/internal/domain/toolresult"
	"github.com/janhq/camus/internal/infrastructure/auth"
	"github.com/janhq/camus/internal/infrastructure/logger"
	"github.com/janhq/camus/internal/infrastructure/queue"
	artifactrepo "github.com/janhq/camus/internal/infrastructure/repository/artifact"
	conversationrepo "github.com/janhq/camus/internal/infrastructure/repository/conversation"
	sessionrepo "github.com/janhq/camus/internal/infrastructure/repository/session"
	toolresultrepo "github.com/janhq/camus/internal/infrastructure/repository/toolresult"
	"github.com/janhq/camus/internal/interfaces/httpserver"
	"github.com/janhq/camus/internal/interfaces/httpserver/handlers"
	"github.com/janhq/camus/internal/worker"
)

var repositorySet = wire.NewSet(
	conversationrepo.NewPostgresRepository,
	wire.Bind(new(conversation.Repository), new(*conversationrepo.PostgresRepository)),
	conversationrepo.NewMessageRepository,
	wire.Bind(new(conversation.MessageRepository), new(*conversationrepo.MessageRepository)),
	artifactrepo.NewPostgresRepository,
	wire.Bind(new(artifact.Repository), new(*artifactrepo.PostgresRepository)),
	toolresultrepo.NewPostgresRepository,
	wire.Bind(new(toolresult.Repository), new(*toolresultrepo.PostgresRepository)),
	sessionrepo.NewPostgresRepository,
)

var infrastructureSet = wire.NewSet(
	newObservability,
	newSanitizer,
	newDatabaseConfig,
	newGormDB,
	newRedisClient,
	newViewCache,
	newArtifactInvalidator,
	newToolResultInvalidator,
	newWriteLocker,
	newLLMClient,
	newTitleCompleter,
	newMetadataCompleter,
	newTaskQueue,
	wire.Bind(new(queue.TaskQueue), new(*queue.MemoryQueue)),
	worker.NewScheduler,
	newMetadataScheduler,
	newReadinessCheck,
	auth.NewValidator,
)

var serviceSet = wire.NewSet(
	newSessionService,
	newArtifactService,
	wire.Bind(new(artifact.Service), new(*artifact.DefaultService)),
	toolresult.NewService,
	wire.Bind(new(handlers.ToolResultService), new(*toolresult.Service)),
	newConversationService,
	wire.Bind(new(handlers.ConversationService), new(*conversation.Service)),
	wire.Bind(new(share.ViewReader), new(*conversation.Service)),
	wire.Bind(new(title.Invalidator), new(*conversation.Service)),
	share.NewService,
	wire.Bind(new(handlers.ShareService), new(*share.Service)),
	title.NewGenerator,
	newMetadataEnricher,
)

var backgroundSet = wire.NewSet(
	newJobInstrumenter,
	newWorkerPool,
	newBackfillCrontab,
)

// BuildApplication assembles the conversation service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		repositorySet,
		infrastructureSet,
		serviceSet,
		backgroundSet,
		handlers.NewProvider,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}
