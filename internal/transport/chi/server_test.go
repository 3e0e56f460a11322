package chi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchgate/internal/domain"
	domsearch "github.com/kailas-cloud/searchgate/internal/domain/search"
	healthuc "github.com/kailas-cloud/searchgate/internal/usecase/health"
)

type mockInserter struct {
	insertFn func(ctx context.Context, text string) (string, error)
	calls    int
}

func (m *mockInserter) Insert(ctx context.Context, text string) (string, error) {
	m.calls++
	if m.insertFn == nil {
		return "generated", nil
	}
	return m.insertFn(ctx, text)
}

type mockSearcher struct {
	searchFn func(ctx context.Context, query string) ([]domsearch.Hit, error)
	calls    int
}

func (m *mockSearcher) Search(ctx context.Context, query string) ([]domsearch.Hit, error) {
	m.calls++
	if m.searchFn == nil {
		return []domsearch.Hit{}, nil
	}
	return m.searchFn(ctx, query)
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report { return m.report }

func newTestRouter(ins *mockInserter, srch *mockSearcher, h *mockHealth) http.Handler {
	if h == nil {
		h = &mockHealth{report: healthuc.Report{Status: healthuc.Healthy}}
	}
	r := chi.NewRouter()
	NewServer(ins, srch, h, zap.NewNop()).Register(r)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return out
}

func TestInsert_Success(t *testing.T) {
	var got string
	ins := &mockInserter{insertFn: func(_ context.Context, text string) (string, error) {
		got = text
		return "abc", nil
	}}
	rr := do(t, newTestRouter(ins, &mockSearcher{}, nil), http.MethodPost, "/insert", `{"text":"hello world"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if msg := decodeBody(t, rr)["message"]; msg != "Document inserted successfully" {
		t.Errorf("message = %v", msg)
	}
	if got != "hello world" {
		t.Errorf("inserted text = %q", got)
	}
}

func TestInsert_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed json", `{"text":`, "Invalid request body"},
		{"not an object", `"hello"`, "Invalid request body"},
		{"missing text", `{}`, "Text field is required"},
		{"empty text", `{"text":""}`, "Text field is required"},
		{"blank text", `{"text":"   \n\t"}`, "Text field is required"},
		{"empty body", ``, "Invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins := &mockInserter{}
			rr := do(t, newTestRouter(ins, &mockSearcher{}, nil), http.MethodPost, "/insert", tt.body)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rr.Code)
			}
			if msg := decodeBody(t, rr)["error"]; msg != tt.want {
				t.Errorf("error = %v, want %q", msg, tt.want)
			}
			if ins.calls != 0 {
				t.Errorf("service called %d times on bad input", ins.calls)
			}
		})
	}
}

func TestInsert_EngineErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "write failure",
			err:        fmt.Errorf("insert document: %w: %w", domain.ErrWrite, errors.New("OOM command not allowed")),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Document insertion failed",
		},
		{
			name:       "engine unreachable",
			err:        fmt.Errorf("insert document: %w", domain.ErrConnection),
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    "Search service unavailable",
		},
		{
			name:       "unclassified",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Document insertion failed",
		},
		{
			name:       "validation from service",
			err:        fmt.Errorf("document ID too long (max 256): %w", domain.ErrValidation),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "document ID too long (max 256)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ins := &mockInserter{insertFn: func(context.Context, string) (string, error) { return "", tt.err }}
			rr := do(t, newTestRouter(ins, &mockSearcher{}, nil), http.MethodPost, "/insert", `{"text":"x"}`)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			body := rr.Body.String()
			if msg := decodeBody(t, rr)["error"]; msg != tt.wantMsg {
				t.Errorf("error = %v, want %q", msg, tt.wantMsg)
			}
			if strings.Contains(body, "OOM") || strings.Contains(body, "boom") {
				t.Errorf("internal detail leaked: %s", body)
			}
		})
	}
}

func TestInsert_BodyTooLarge(t *testing.T) {
	ins := &mockInserter{insertFn: func(context.Context, string) (string, error) {
		t.Error("inserter must not be called")
		return "", nil
	}}
	body := `{"text":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	rr := do(t, newTestRouter(ins, &mockSearcher{}, nil), http.MethodPost, "/insert", body)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rr.Code)
	}
	if msg := decodeBody(t, rr)["error"]; msg != "Request body too large" {
		t.Errorf("error = %v", msg)
	}
}

func TestInsert_WrongMethod(t *testing.T) {
	rr := do(t, newTestRouter(&mockInserter{}, &mockSearcher{}, nil), http.MethodGet, "/insert", "")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rr.Code)
	}
}

func TestSearch_Results(t *testing.T) {
	var gotQuery string
	srch := &mockSearcher{searchFn: func(_ context.Context, q string) ([]domsearch.Hit, error) {
		gotQuery = q
		return []domsearch.Hit{{ID: "1", Text: "hello world"}, {ID: "2", Text: "hello"}}, nil
	}}
	rr := do(t, newTestRouter(&mockInserter{}, srch, nil), http.MethodGet, "/search?query=hello+world", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if gotQuery != "hello world" {
		t.Errorf("query = %q", gotQuery)
	}

	var resp searchResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Results) != 2 || resp.Results[0].ID != "1" || resp.Results[0].Text != "hello world" {
		t.Errorf("unexpected results: %+v", resp.Results)
	}
}

func TestSearch_NoMatches(t *testing.T) {
	rr := do(t, newTestRouter(&mockInserter{}, &mockSearcher{}, nil), http.MethodGet, "/search?query=zzzznotfound", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["message"] != "No matches found" {
		t.Errorf("message = %v", body["message"])
	}
	if _, ok := body["results"]; ok {
		t.Error("empty result must not carry a results field")
	}
}

func TestSearch_MissingQuery(t *testing.T) {
	for _, target := range []string{"/search", "/search?query=", "/search?query=%20%20"} {
		t.Run(target, func(t *testing.T) {
			srch := &mockSearcher{}
			rr := do(t, newTestRouter(&mockInserter{}, srch, nil), http.MethodGet, target, "")

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rr.Code)
			}
			if msg := decodeBody(t, rr)["error"]; msg != "Query parameter is required" {
				t.Errorf("error = %v", msg)
			}
			if srch.calls != 0 {
				t.Error("service must not be called without a query")
			}
		})
	}
}

func TestSearch_EngineErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"query failure", fmt.Errorf("search: %w: %w", domain.ErrQuery, errors.New("Syntax error at offset 3")),
			http.StatusInternalServerError, "Search operation failed"},
		{"engine unreachable", fmt.Errorf("search: %w", domain.ErrConnection),
			http.StatusServiceUnavailable, "Search service unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srch := &mockSearcher{searchFn: func(context.Context, string) ([]domsearch.Hit, error) { return nil, tt.err }}
			rr := do(t, newTestRouter(&mockInserter{}, srch, nil), http.MethodGet, "/search?query=a", "")

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if msg := decodeBody(t, rr)["error"]; msg != tt.wantMsg {
				t.Errorf("error = %v, want %q", msg, tt.wantMsg)
			}
			if strings.Contains(rr.Body.String(), "Syntax") {
				t.Error("engine detail leaked")
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		report     healthuc.Report
		wantStatus int
	}{
		{"healthy", healthuc.Report{Status: healthuc.Healthy, Checks: map[string]healthuc.CheckResult{
			healthuc.ComponentEngine: healthuc.CheckOK, healthuc.ComponentEventLog: healthuc.CheckOK,
		}}, http.StatusOK},
		{"degraded", healthuc.Report{Status: healthuc.Degraded, Checks: map[string]healthuc.CheckResult{
			healthuc.ComponentEngine: healthuc.CheckError, healthuc.ComponentEventLog: healthuc.CheckOK,
		}}, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, newTestRouter(&mockInserter{}, &mockSearcher{}, &mockHealth{report: tt.report}),
				http.MethodGet, "/health", "")

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			var resp healthResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Status != tt.report.Status {
				t.Errorf("status field = %q", resp.Status)
			}
			if resp.Checks[healthuc.ComponentEngine] != tt.report.Checks[healthuc.ComponentEngine] {
				t.Errorf("engine check = %q", resp.Checks[healthuc.ComponentEngine])
			}
		})
	}
}

func TestMetricsRoute(t *testing.T) {
	rr := do(t, newTestRouter(&mockInserter{}, &mockSearcher{}, nil), http.MethodGet, "/metrics", "")
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

func TestValidationMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("query is required: %w", domain.ErrValidation), "query is required"},
		{fmt.Errorf("insert: text too long: %w", domain.ErrValidation), "text too long"},
		{domain.ErrValidation, "validation failed"},
	}
	for _, tt := range tests {
		if got := validationMessage(tt.err); got != tt.want {
			t.Errorf("validationMessage(%q) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
