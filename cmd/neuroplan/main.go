package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/alexanderramin/neuroplan/internal/cli"
	"github.com/alexanderramin/neuroplan/internal/config"
	"github.com/alexanderramin/neuroplan/internal/db"
	"github.com/alexanderramin/neuroplan/internal/intelligence"
	"github.com/alexanderramin/neuroplan/internal/llm"
	"github.com/alexanderramin/neuroplan/internal/repository"
	"github.com/alexanderramin/neuroplan/internal/server"
	"github.com/alexanderramin/neuroplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := cfg.Logger(os.Stderr)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire the LLM gateway (disabled client when NEUROPLAN_LLM_ENABLED is off)
	var client llm.LLMClient = llm.NewDisabledClient()
	if cfg.LLM.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if cfg.LLM.LogCalls {
			observer = llm.NewLogObserver(logger)
		}
		if client, err = llm.NewGatewayClient(cfg.LLM, observer); err != nil {
			return fmt.Errorf("configuring LLM: %w", err)
		}
	}
	tokens, err := llm.NewTokenCounter(cfg.LLM.Encoding)
	if err != nil {
		logger.Warn("token counter unavailable, using estimates", "encoding", cfg.LLM.Encoding, "error", err)
	}

	services := wireServices(database, client, tokens, cfg.LLM.HistoryTokens, nil)

	ctx := context.Background()
	user, err := services.Users.EnsureLocalUser(ctx)
	if err != nil {
		return fmt.Errorf("preparing local user: %w", err)
	}

	app := &cli.App{
		Users:         services.Users,
		Conversations: services.Conversations,
		Chat:          services.Chat,
		Roadmaps:      services.Roadmaps,
		Schedule:      services.Schedule,
		Vault:         services.Vault,
		Dashboard:     services.Dashboard,
		UserID:        user.ID,
		DefaultAddr:   cfg.ServerAddr,
	}

	// The server gets its own service set so use cases are logged there
	// and not on the interactive CLI.
	app.Serve = func(ctx context.Context, addr string) error {
		logged := wireServices(database, client, tokens, cfg.LLM.HistoryTokens, service.NewLogUseCaseObserver(logger))
		handler := server.New(server.Deps{
			Users:         logged.Users,
			Conversations: logged.Conversations,
			Chat:          logged.Chat,
			Roadmaps:      logged.Roadmaps,
			Schedule:      logged.Schedule,
			Vault:         logged.Vault,
			Dashboard:     logged.Dashboard,
			Logger:        logger,
		})
		logger.Info("llm", "enabled", cfg.LLM.Enabled, "model", cfg.LLM.Model, "available", client.Available(ctx))
		return server.ListenAndServe(ctx, addr, handler, logger)
	}

	// Detect interactive terminal for the chat TUI and wizards.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}

type serviceSet struct {
	Users         service.UserService
	Conversations service.ConversationService
	Chat          service.ChatService
	Roadmaps      service.RoadmapService
	Schedule      service.ScheduleService
	Vault         service.VaultService
	Dashboard     service.DashboardService
}

func wireServices(database *sql.DB, client llm.LLMClient, tokens *llm.TokenCounter, historyTokens int, observer service.UseCaseObserver) serviceSet {
	userRepo := repository.NewSQLiteUserRepo(database)
	convRepo := repository.NewSQLiteConversationRepo(database)
	msgRepo := repository.NewSQLiteMessageRepo(database)
	goalRepo := repository.NewSQLiteGoalRepo(database)
	roadmapRepo := repository.NewSQLiteRoadmapRepo(database)
	scheduleRepo := repository.NewSQLiteScheduleRepo(database)
	vaultRepo := repository.NewSQLiteVaultRepo(database)
	progressRepo := repository.NewSQLiteProgressRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	roadmaps := service.NewRoadmapService(goalRepo, roadmapRepo, intelligence.NewRoadmapDraftService(client), uow, observer)

	return serviceSet{
		Users:         service.NewUserService(userRepo, observer),
		Conversations: service.NewConversationService(convRepo, msgRepo, observer),
		Chat:          service.NewChatService(convRepo, msgRepo, vaultRepo, roadmaps, client, tokens, historyTokens, observer),
		Roadmaps:      roadmaps,
		Schedule:      service.NewScheduleService(scheduleRepo, uow, observer),
		Vault:         service.NewVaultService(vaultRepo, uow, observer),
		Dashboard:     service.NewDashboardService(progressRepo, goalRepo, scheduleRepo),
	}
}
