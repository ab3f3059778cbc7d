package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/alexanderramin/neuroplan/internal/db"
	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/alexanderramin/neuroplan/internal/intelligence"
	"github.com/alexanderramin/neuroplan/internal/llm"
	"github.com/alexanderramin/neuroplan/internal/repository"
	"github.com/alexanderramin/neuroplan/internal/testutil"
	"github.com/stretchr/testify/require"
)

// mockLLM answers roadmap calls with roadmapText and streams chatDeltas for
// chat calls. Every request is recorded.
type mockLLM struct {
	mu          sync.Mutex
	roadmapText string
	roadmapErr  error
	chatDeltas  []string
	chatErr     error
	requests    []llm.GenerateRequest
}

func (m *mockLLM) record(req llm.GenerateRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
}

func (m *mockLLM) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.record(req)
	if req.Task == llm.TaskRoadmap {
		if m.roadmapErr != nil {
			return nil, m.roadmapErr
		}
		return &llm.GenerateResponse{Text: m.roadmapText, Model: "mock"}, nil
	}
	if m.chatErr != nil {
		return nil, m.chatErr
	}
	return &llm.GenerateResponse{Text: strings.Join(m.chatDeltas, ""), Model: "mock"}, nil
}

func (m *mockLLM) Stream(_ context.Context, req llm.GenerateRequest, onDelta llm.DeltaFunc) (*llm.GenerateResponse, error) {
	m.record(req)
	if m.chatErr != nil {
		return nil, m.chatErr
	}
	for _, d := range m.chatDeltas {
		if err := onDelta(d); err != nil {
			return nil, err
		}
	}
	return &llm.GenerateResponse{Text: strings.Join(m.chatDeltas, ""), Model: "mock"}, nil
}

func (m *mockLLM) Available(context.Context) bool { return true }

func (m *mockLLM) lastRequest(t *testing.T, task llm.TaskType) llm.GenerateRequest {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.requests) - 1; i >= 0; i-- {
		if m.requests[i].Task == task {
			return m.requests[i]
		}
	}
	t.Fatalf("no %s request recorded", task)
	return llm.GenerateRequest{}
}

type testEnv struct {
	db   *sql.DB
	uow  db.UnitOfWork
	llm  *mockLLM
	user *domain.User

	conversationRepo *repository.SQLiteConversationRepo
	messageRepo      *repository.SQLiteMessageRepo
	goalRepo         *repository.SQLiteGoalRepo
	roadmapRepo      *repository.SQLiteRoadmapRepo
	scheduleRepo     *repository.SQLiteScheduleRepo
	vaultRepo        *repository.SQLiteVaultRepo
	progressRepo     *repository.SQLiteProgressRepo

	conversations ConversationService
	chat          ChatService
	roadmaps      RoadmapService
	schedule      ScheduleService
	vault         VaultService
	dashboard     DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	mock := &mockLLM{
		roadmapText: roadmapJSON(t, testutil.NewTestRoadmapContent("Go", 4)),
		chatDeltas:  []string{"Hello", " there"},
	}

	e := &testEnv{
		db:               database,
		uow:              uow,
		llm:              mock,
		conversationRepo: repository.NewSQLiteConversationRepo(database),
		messageRepo:      repository.NewSQLiteMessageRepo(database),
		goalRepo:         repository.NewSQLiteGoalRepo(database),
		roadmapRepo:      repository.NewSQLiteRoadmapRepo(database),
		scheduleRepo:     repository.NewSQLiteScheduleRepo(database),
		vaultRepo:        repository.NewSQLiteVaultRepo(database),
		progressRepo:     repository.NewSQLiteProgressRepo(database),
	}

	e.user = testutil.NewTestUser()
	require.NoError(t, repository.NewSQLiteUserRepo(database).Create(context.Background(), e.user))

	e.conversations = NewConversationService(e.conversationRepo, e.messageRepo)
	e.roadmaps = NewRoadmapService(e.goalRepo, e.roadmapRepo, intelligence.NewRoadmapDraftService(mock), uow)
	e.chat = NewChatService(e.conversationRepo, e.messageRepo, e.vaultRepo, e.roadmaps, mock, &llm.TokenCounter{}, 6000)
	e.schedule = NewScheduleService(e.scheduleRepo, uow)
	e.vault = NewVaultService(e.vaultRepo, uow)
	e.dashboard = NewDashboardService(e.progressRepo, e.goalRepo, e.scheduleRepo)
	return e
}

// otherUser seeds a second user for ownership checks.
func (e *testEnv) otherUser(t *testing.T) *domain.User {
	t.Helper()
	u := testutil.NewTestUser(testutil.WithDisplayName("Someone Else"))
	require.NoError(t, repository.NewSQLiteUserRepo(e.db).Create(context.Background(), u))
	return u
}

func roadmapJSON(t *testing.T, c domain.RoadmapContent) string {
	t.Helper()
	data, err := json.Marshal(c)
	require.NoError(t, err)
	return string(data)
}
