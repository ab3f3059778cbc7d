package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/alexanderramin/neuroplan/internal/llm"
)

// MockLLM answers roadmap requests with RoadmapText and streams ChatDeltas
// for everything else.
type MockLLM struct {
	mu          sync.Mutex
	RoadmapText string
	RoadmapErr  error
	ChatDeltas  []string
	ChatErr     error
	Calls       int
}

func (m *MockLLM) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if req.Task == llm.TaskRoadmap {
		if m.RoadmapErr != nil {
			return nil, m.RoadmapErr
		}
		return &llm.GenerateResponse{Text: m.RoadmapText, Model: "mock"}, nil
	}
	if m.ChatErr != nil {
		return nil, m.ChatErr
	}
	return &llm.GenerateResponse{Text: strings.Join(m.ChatDeltas, ""), Model: "mock"}, nil
}

func (m *MockLLM) Stream(_ context.Context, _ llm.GenerateRequest, onDelta llm.DeltaFunc) (*llm.GenerateResponse, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.ChatErr != nil {
		return nil, m.ChatErr
	}
	for _, d := range m.ChatDeltas {
		if err := onDelta(d); err != nil {
			return nil, err
		}
	}
	return &llm.GenerateResponse{Text: strings.Join(m.ChatDeltas, ""), Model: "mock"}, nil
}

func (m *MockLLM) Available(context.Context) bool { return true }
