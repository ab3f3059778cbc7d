package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// chunk is the subset of the OpenAI chat-completion chunk clients read.
type chunk struct {
	Choices []chunkChoice `json:"choices"`
}

type chunkChoice struct {
	Delta chunkDelta `json:"delta"`
}

type chunkDelta struct {
	Content string `json:"content"`
}

// sseStream writes chat deltas as server-sent events. Headers are sent with
// the first frame so a failure before any output can still be reported as
// an ordinary JSON error.
type sseStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
	started bool
}

func newSSEStream(w http.ResponseWriter) *sseStream {
	f, _ := w.(http.Flusher)
	return &sseStream{w: w, flusher: f}
}

func (s *sseStream) start() {
	if s.started {
		return
	}
	h := s.w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	s.w.WriteHeader(http.StatusOK)
	s.started = true
}

func (s *sseStream) frame(payload string) error {
	s.start()
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		return err
	}
	if s.flusher != nil {
		s.flusher.Flush()
	}
	return nil
}

// Delta sends one content chunk.
func (s *sseStream) Delta(content string) error {
	data, err := json.Marshal(chunk{Choices: []chunkChoice{{Delta: chunkDelta{Content: content}}}})
	if err != nil {
		return err
	}
	return s.frame(string(data))
}

// Fail reports an error inside an already started stream.
func (s *sseStream) Fail(msg string) error {
	data, err := json.Marshal(errorResponse{Error: msg})
	if err != nil {
		return err
	}
	return s.frame(string(data))
}

// Done terminates the stream.
func (s *sseStream) Done() error {
	return s.frame("[DONE]")
}
