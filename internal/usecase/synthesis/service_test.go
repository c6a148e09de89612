package synthesis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/kitvault/kitvault/internal/domain"
)

// --- Mocks ---

type mockBackend struct {
	name        string
	configured  bool
	genResp     string
	genErr      error
	genCalls    int
	lastPrompt  string
	scoreCalled bool
}

func (m *mockBackend) Name() string     { return m.name }
func (m *mockBackend) Configured() bool { return m.configured }

func (m *mockBackend) Score(_ context.Context, _ string) (string, error) {
	m.scoreCalled = true
	return "", errors.New("not used")
}

func (m *mockBackend) Generate(_ context.Context, prompt string) (string, error) {
	m.genCalls++
	m.lastPrompt = prompt
	return m.genResp, m.genErr
}

type mockBackends struct {
	backend   domain.Backend
	lastModel string
}

func (m *mockBackends) ForModel(model string) domain.Backend {
	m.lastModel = model
	return m.backend
}

// --- Tests ---

func TestAnswer_RawMode_DeterministicPreview(t *testing.T) {
	backend := &mockBackend{configured: true, genResp: "llm answer"}
	svc := New(&mockBackends{backend: backend}, nil)

	contextBlock := strings.Repeat("a", 250)
	first, err := svc.Answer(context.Background(), "q", contextBlock, 3, false, "gpt-4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Answer(context.Background(), "q", contextBlock, 3, false, "gpt-4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := fmt.Sprintf("Retrieved 3 relevant documents. Content preview: %s...", strings.Repeat("a", 200))
	if first != want {
		t.Errorf("preview:\ngot:  %q\nwant: %q", first, want)
	}
	if first != second {
		t.Error("raw mode must be byte-identical across calls")
	}
	if backend.genCalls != 0 {
		t.Errorf("raw mode must not call the backend, got %d calls", backend.genCalls)
	}
}

func TestAnswer_RawMode_ShortContextNotPadded(t *testing.T) {
	svc := New(&mockBackends{}, nil)

	got, err := svc.Answer(context.Background(), "q", "tiny", 1, false, "gpt-4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Retrieved 1 relevant documents. Content preview: tiny..."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAnswer_UnconfiguredBackend_Diagnostic(t *testing.T) {
	backend := &mockBackend{name: "openai", configured: false}
	svc := New(&mockBackends{backend: backend}, nil)

	contextBlock := strings.Repeat("c", 150)
	got, err := svc.Answer(context.Background(), "what is it?", contextBlock, 2, true, "gpt-4")
	if err != nil {
		t.Fatalf("diagnostic answer must not be an error, got: %v", err)
	}

	want := fmt.Sprintf(
		"openai backend not configured. Context: %s... Query: what is it?",
		strings.Repeat("c", 100),
	)
	if got != want {
		t.Errorf("diagnostic:\ngot:  %q\nwant: %q", got, want)
	}
	if backend.genCalls != 0 {
		t.Errorf("unconfigured backend must not be called, got %d calls", backend.genCalls)
	}
}

func TestAnswer_NilBackend_Diagnostic(t *testing.T) {
	svc := New(&mockBackends{}, nil)

	got, err := svc.Answer(context.Background(), "q", "ctx", 1, true, "mystery-model")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "generation backend not configured.") {
		t.Errorf("expected generic diagnostic, got %q", got)
	}
}

func TestAnswer_BackendError_Propagates(t *testing.T) {
	genErr := fmt.Errorf("rate limited: %w", domain.ErrGenerationBackend)
	backend := &mockBackend{name: "openai", configured: true, genErr: genErr}
	svc := New(&mockBackends{backend: backend}, nil)

	_, err := svc.Answer(context.Background(), "q", "ctx", 1, true, "gpt-4")
	if err == nil {
		t.Fatal("expected error from a configured, failing backend")
	}
	if !errors.Is(err, domain.ErrGenerationBackend) {
		t.Errorf("error should wrap domain.ErrGenerationBackend, got %v", err)
	}
}

func TestAnswer_ConfiguredBackend_PromptShape(t *testing.T) {
	backend := &mockBackend{name: "openai", configured: true, genResp: "the answer"}
	backends := &mockBackends{backend: backend}
	svc := New(backends, nil)

	got, err := svc.Answer(context.Background(), "why?", "because-context", 1, true, "gemini-pro")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "the answer" {
		t.Errorf("got %q, want %q", got, "the answer")
	}
	if backends.lastModel != "gemini-pro" {
		t.Errorf("model routed: got %q, want %q", backends.lastModel, "gemini-pro")
	}
	if !strings.Contains(backend.lastPrompt, "Context:\nbecause-context") {
		t.Error("prompt should contain the context block")
	}
	if !strings.Contains(backend.lastPrompt, "Question: why?") {
		t.Error("prompt should contain the question")
	}
}
