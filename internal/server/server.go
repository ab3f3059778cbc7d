package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/neuroplan/internal/service"
)

// Deps are the services the HTTP API exposes.
type Deps struct {
	Users         service.UserService
	Conversations service.ConversationService
	Chat          service.ChatService
	Roadmaps      service.RoadmapService
	Schedule      service.ScheduleService
	Vault         service.VaultService
	Dashboard     service.DashboardService
	Logger        *slog.Logger
	Now           func() time.Time
}

type Server struct {
	users         service.UserService
	conversations service.ConversationService
	chat          service.ChatService
	roadmaps      service.RoadmapService
	schedule      service.ScheduleService
	vault         service.VaultService
	dashboard     service.DashboardService
	logger        *slog.Logger
	now           func() time.Time
}

// New returns the API handler with request id, logging and CORS applied.
func New(d Deps) http.Handler {
	s := &Server{
		users:         d.Users,
		conversations: d.Conversations,
		chat:          d.Chat,
		roadmaps:      d.Roadmaps,
		schedule:      d.Schedule,
		vault:         d.Vault,
		dashboard:     d.Dashboard,
		logger:        d.Logger,
		now:           d.Now,
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.now == nil {
		s.now = time.Now
	}
	return chainMiddlewares(s.routes(), withRequestID, withLogging(s.logger), withCORS)
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /functions/v1/generate-roadmap", s.auth(s.handleGenerateRoadmap))
	mux.HandleFunc("POST /functions/v1/chat", s.auth(s.handleChatCompletion))

	mux.HandleFunc("GET /api/conversations", s.auth(s.handleListConversations))
	mux.HandleFunc("POST /api/conversations", s.auth(s.handleCreateConversation))
	mux.HandleFunc("PATCH /api/conversations/{id}", s.auth(s.handleUpdateConversation))
	mux.HandleFunc("DELETE /api/conversations/{id}", s.auth(s.handleDeleteConversation))
	mux.HandleFunc("GET /api/conversations/{id}/messages", s.auth(s.handleHistory))
	mux.HandleFunc("POST /api/conversations/{id}/messages", s.auth(s.handleSendMessage))
	mux.HandleFunc("DELETE /api/conversations/{id}/messages", s.auth(s.handleClearHistory))

	mux.HandleFunc("GET /api/goals", s.auth(s.handleListGoals))
	mux.HandleFunc("POST /api/goals", s.auth(s.handleCreateGoal))
	mux.HandleFunc("GET /api/goals/{id}", s.auth(s.handleGetGoal))
	mux.HandleFunc("DELETE /api/goals/{id}", s.auth(s.handleDeleteGoal))
	mux.HandleFunc("POST /api/goals/{id}/roadmap", s.auth(s.handleGenerateGoalRoadmap))
	mux.HandleFunc("POST /api/goals/{id}/schedule", s.auth(s.handleScheduleGoal))

	mux.HandleFunc("GET /api/schedule", s.auth(s.handleListSchedule))
	mux.HandleFunc("POST /api/schedule", s.auth(s.handleAddTask))
	mux.HandleFunc("POST /api/schedule/{id}/toggle", s.auth(s.handleToggleTask))
	mux.HandleFunc("POST /api/schedule/{id}/move", s.auth(s.handleMoveTask))
	mux.HandleFunc("DELETE /api/schedule/{id}", s.auth(s.handleDeleteTask))

	mux.HandleFunc("GET /api/vault", s.auth(s.handleListVault))
	mux.HandleFunc("GET /api/vault/tags", s.auth(s.handleVaultTags))
	mux.HandleFunc("POST /api/vault", s.auth(s.handleCreatePrompt))
	mux.HandleFunc("PUT /api/vault/{id}", s.auth(s.handleUpdatePrompt))
	mux.HandleFunc("DELETE /api/vault/{id}", s.auth(s.handleDeletePrompt))

	mux.HandleFunc("GET /api/dashboard", s.auth(s.handleDashboard))
	return mux
}

// ListenAndServe runs handler on addr until ctx is cancelled, then shuts
// down gracefully.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
