package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gridrez/resume-parser/internal/core/domain"
)

func respondWith(t *testing.T, w http.ResponseWriter, modelOutput string) {
	t.Helper()
	payload, err := json.Marshal(map[string]string{"response": modelOutput})
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	_, _ = w.Write(payload)
}

func TestExtractProfileParsesModelOutput(t *testing.T) {
	var capturedPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		capturedPrompt, _ = payload["prompt"].(string)
		if format, _ := payload["format"].(string); format != "json" {
			t.Errorf("expected format=json, got %q", format)
		}
		respondWith(t, w, `{"name":"Jane Doe","currentRole":"Staff Engineer","experienceYears":8,"skills":["Go"],"education":null,"summary":"Builds systems.","email":"jane@example.com","phone":null,"location":null,"socialHandles":null}`)
	}))
	defer server.Close()

	client := New(server.URL, "llama3", 5*time.Second, nil, nil)
	profile, err := client.ExtractProfile(context.Background(), "Jane Doe resume text")
	if err != nil {
		t.Fatalf("ExtractProfile() error = %v", err)
	}
	if profile.Name == nil || *profile.Name != "Jane Doe" {
		t.Fatalf("unexpected name: %v", profile.Name)
	}
	if profile.ExperienceYears == nil || *profile.ExperienceYears != 8 {
		t.Fatalf("unexpected experienceYears: %v", profile.ExperienceYears)
	}
	if !strings.Contains(capturedPrompt, "Jane Doe resume text") {
		t.Fatalf("prompt should carry the document text: %s", capturedPrompt)
	}
	if !strings.Contains(capturedPrompt, "set name to null") {
		t.Fatalf("prompt should carry the not-a-resume rule: %s", capturedPrompt)
	}
}

func TestExtractProfileRejectsWrongTypedName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWith(t, w, `{"name":42,"currentRole":"Engineer"}`)
	}))
	defer server.Close()

	client := New(server.URL, "llama3", 5*time.Second, nil, nil)
	_, err := client.ExtractProfile(context.Background(), "some text")

	var violation *domain.SchemaViolation
	if !errors.As(err, &violation) {
		t.Fatalf("expected SchemaViolation, got %v", err)
	}
	if violation.Field != "name" {
		t.Fatalf("expected violation on name, got %q (%s)", violation.Field, violation.Reason)
	}
}

func TestExtractProfileRejectsNonJSONOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWith(t, w, `I could not find a resume in this document.`)
	}))
	defer server.Close()

	client := New(server.URL, "llama3", 5*time.Second, nil, nil)
	_, err := client.ExtractProfile(context.Background(), "some text")

	var violation *domain.SchemaViolation
	if !errors.As(err, &violation) {
		t.Fatalf("expected SchemaViolation, got %v", err)
	}
}

func TestExtractProfileAttributesNestedViolationToTopLevelField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWith(t, w, `{"name":"Jane","education":[{"degree":"BSc","graduationYear":"not a year"}]}`)
	}))
	defer server.Close()

	client := New(server.URL, "llama3", 5*time.Second, nil, nil)
	_, err := client.ExtractProfile(context.Background(), "some text")

	var violation *domain.SchemaViolation
	if !errors.As(err, &violation) {
		t.Fatalf("expected SchemaViolation, got %v", err)
	}
	if violation.Field != "education" {
		t.Fatalf("expected violation attributed to education, got %q", violation.Field)
	}
}

func TestExtractProfileRetriesServerOverload(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "loading model", http.StatusServiceUnavailable)
			return
		}
		respondWith(t, w, `{"name":"Jane Doe"}`)
	}))
	defer server.Close()

	client := New(server.URL, "llama3", 5*time.Second, nil, nil)
	profile, err := client.ExtractProfile(context.Background(), "some text")
	if err != nil {
		t.Fatalf("ExtractProfile() error = %v", err)
	}
	if profile.Name == nil || *profile.Name != "Jane Doe" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if calls != 2 {
		t.Fatalf("expected 2 transport calls, got %d", calls)
	}
}

func TestExtractProfileMarksPersistentOverloadTemporary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "loading model", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(server.URL, "llama3", 5*time.Second, nil, nil)
	_, err := client.ExtractProfile(context.Background(), "some text")
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected ErrTemporary, got %v", err)
	}
}

func TestExtractProfileDoesNotRetryBadRequest(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "unknown model", http.StatusNotFound)
	}))
	defer server.Close()

	client := New(server.URL, "llama3", 5*time.Second, nil, nil)
	_, err := client.ExtractProfile(context.Background(), "some text")
	if err == nil {
		t.Fatal("expected error")
	}
	if domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("a rejected request is not transient: %v", err)
	}
	if !strings.Contains(err.Error(), "unknown model") {
		t.Fatalf("expected response body in error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 transport call, got %d", calls)
	}
}
