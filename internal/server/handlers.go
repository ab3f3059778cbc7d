package server

import (
	"net/http"
	"strconv"

	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/alexanderramin/neuroplan/internal/scheduler"
	"github.com/alexanderramin/neuroplan/internal/service"
)

// ─────────────────────────────────────────────
// Hosted function compatible endpoints
// ─────────────────────────────────────────────

func (s *Server) handleGenerateRoadmap(w http.ResponseWriter, r *http.Request) {
	var req service.GenerateRoadmapRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	rm, err := s.roadmaps.Generate(r.Context(), userFrom(r.Context()).ID, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"roadmap": rm.Content, "id": rm.ID})
}

func (s *Server) handleChatCompletion(w http.ResponseWriter, r *http.Request) {
	var req chatCompletionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	stream := newSSEStream(w)
	_, err := s.chat.Complete(r.Context(), toCompletionRequest(req), stream.Delta)
	s.finishStream(w, r, stream, err)
}

// finishStream closes an SSE response. Errors before the first frame are
// returned as JSON; later ones become an error frame.
func (s *Server) finishStream(w http.ResponseWriter, r *http.Request, stream *sseStream, err error) {
	if err == nil {
		_ = stream.Done()
		return
	}
	if !stream.started {
		s.writeError(w, r, err)
		return
	}
	s.logger.ErrorContext(r.Context(), "stream failed", "error", err.Error(), "request_id", RequestID(r.Context()))
	_, msg := statusFor(err)
	_ = stream.Fail(msg)
}

// ─────────────────────────────────────────────
// Conversations
// ─────────────────────────────────────────────

func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	list, err := s.conversations.List(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]conversationResponse, len(list))
	for i, c := range list {
		out[i] = toConversation(c)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateConversation(w http.ResponseWriter, r *http.Request) {
	var req createConversationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	c, err := s.conversations.Create(r.Context(), userFrom(r.Context()).ID, req.Title, req.Skill)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toConversation(c))
}

func (s *Server) handleUpdateConversation(w http.ResponseWriter, r *http.Request) {
	var req updateConversationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	ctx, userID, id := r.Context(), userFrom(r.Context()).ID, r.PathValue("id")

	c, err := s.conversations.Get(ctx, userID, id)
	if err == nil && req.Title != nil {
		c, err = s.conversations.Rename(ctx, userID, id, *req.Title)
	}
	if err == nil && req.Pinned != nil {
		c, err = s.conversations.SetPinned(ctx, userID, id, *req.Pinned)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toConversation(c))
}

func (s *Server) handleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	if err := s.conversations.Delete(r.Context(), userFrom(r.Context()).ID, r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	msgs, err := s.conversations.History(r.Context(), userFrom(r.Context()).ID, r.PathValue("id"), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMessages(msgs))
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	stream := newSSEStream(w)
	_, err := s.chat.Send(r.Context(), userFrom(r.Context()).ID, r.PathValue("id"), req.Message, stream.Delta)
	s.finishStream(w, r, stream, err)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.conversations.ClearHistory(r.Context(), userFrom(r.Context()).ID, r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ─────────────────────────────────────────────
// Goals and roadmaps
// ─────────────────────────────────────────────

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.roadmaps.ListGoals(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]goalResponse, len(goals))
	for i, g := range goals {
		out[i] = toGoal(g)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	ctx, userID := r.Context(), userFrom(r.Context()).ID
	g, err := s.roadmaps.CreateGoal(ctx, userID, req.Skill, domain.Level(req.Level), req.DurationWeeks)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := domain.GoalWithRoadmap{Goal: g}
	if req.Generate {
		rm, err := s.roadmaps.Generate(ctx, userID, service.GenerateRoadmapRequest{
			Skill: g.Skill, Level: g.Level, DurationWeeks: g.DurationWeeks, GoalID: g.ID,
		})
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		out.Roadmap = rm
	}
	writeJSON(w, http.StatusCreated, toGoal(out))
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	g, err := s.roadmaps.GetRoadmap(r.Context(), userFrom(r.Context()).ID, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoal(*g))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.roadmaps.DeleteGoal(r.Context(), userFrom(r.Context()).ID, r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGenerateGoalRoadmap(w http.ResponseWriter, r *http.Request) {
	ctx, userID := r.Context(), userFrom(r.Context()).ID
	g, err := s.roadmaps.GetRoadmap(ctx, userID, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rm, err := s.roadmaps.Generate(ctx, userID, service.GenerateRoadmapRequest{
		Skill: g.Goal.Skill, Level: g.Goal.Level, DurationWeeks: g.Goal.DurationWeeks, GoalID: g.Goal.ID,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoadmap(rm))
}

func (s *Server) handleScheduleGoal(w http.ResponseWriter, r *http.Request) {
	var req scheduleGoalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	start := s.now()
	if req.Start != "" {
		t, err := scheduler.ParseDate(req.Start)
		if err != nil {
			badRequest(w, "start must use YYYY-MM-DD")
			return
		}
		start = t
	}
	tasks, err := s.roadmaps.ScheduleRoadmap(r.Context(), userFrom(r.Context()).ID, r.PathValue("id"), start)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTasks(tasks))
}

// ─────────────────────────────────────────────
// Schedule
// ─────────────────────────────────────────────

func (s *Server) handleListSchedule(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	anchor := s.now()
	if d := q.Get("date"); d != "" {
		t, err := scheduler.ParseDate(d)
		if err != nil {
			badRequest(w, "date must use YYYY-MM-DD")
			return
		}
		anchor = t
	}
	view, err := s.schedule.ListRange(r.Context(), userFrom(r.Context()).ID, scheduler.ParseViewMode(q.Get("view")), anchor)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, calendarResponse{View: view.View, Range: view.Range, Tasks: toTasks(view.Tasks)})
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var req addTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	t, err := s.schedule.Add(r.Context(), userFrom(r.Context()).ID, req.Date, req.Task, req.Note)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTask(t))
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.schedule.Toggle(r.Context(), userFrom(r.Context()).ID, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTask(t))
}

func (s *Server) handleMoveTask(w http.ResponseWriter, r *http.Request) {
	var req moveTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := s.schedule.Move(r.Context(), userFrom(r.Context()).ID, r.PathValue("id"), req.Delta); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.schedule.Delete(r.Context(), userFrom(r.Context()).ID, r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ─────────────────────────────────────────────
// Prompt vault
// ─────────────────────────────────────────────

func (s *Server) handleListVault(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	prompts, err := s.vault.Filter(r.Context(), userFrom(r.Context()).ID, service.VaultFilter{
		Search:   q.Get("search"),
		Tag:      q.Get("tag"),
		Category: q.Get("category"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]promptResponse, len(prompts))
	for i, p := range prompts {
		out[i] = toPrompt(p)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleVaultTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.vault.Tags(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if tags == nil {
		tags = []string{}
	}
	writeJSON(w, http.StatusOK, tags)
}

func (s *Server) handleCreatePrompt(w http.ResponseWriter, r *http.Request) {
	s.savePrompt(w, r, "", http.StatusCreated)
}

func (s *Server) handleUpdatePrompt(w http.ResponseWriter, r *http.Request) {
	s.savePrompt(w, r, r.PathValue("id"), http.StatusOK)
}

func (s *Server) savePrompt(w http.ResponseWriter, r *http.Request, id string, status int) {
	var req promptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	p := &domain.VaultPrompt{
		ID:       id,
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		Category: req.Category,
	}
	if err := s.vault.Save(r.Context(), userFrom(r.Context()).ID, p); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, status, toPrompt(p))
}

func (s *Server) handleDeletePrompt(w http.ResponseWriter, r *http.Request) {
	if err := s.vault.Delete(r.Context(), userFrom(r.Context()).ID, r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ─────────────────────────────────────────────
// Dashboard
// ─────────────────────────────────────────────

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sum, err := s.dashboard.Summary(r.Context(), userFrom(r.Context()).ID, s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboardResponse{
		CompletedTasks: sum.CompletedTasks,
		Streak:         sum.Streak,
		GoalCount:      sum.GoalCount,
		Today:          sum.Today,
		TodayTasks:     toTasks(sum.TodayTasks),
	})
}
