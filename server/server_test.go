package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"clanTracker/services/pipeline"
	"clanTracker/services/report"

	"github.com/gin-gonic/gin"
)

type fakeRuns struct {
	mu      sync.Mutex
	running bool
	calls   int
	last    *pipeline.Summary
	called  chan struct{}
}

func (f *fakeRuns) RunOnce(context.Context) (pipeline.Summary, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.called != nil {
		close(f.called)
	}
	return pipeline.Summary{}, nil
}

func (f *fakeRuns) Running() bool { return f.running }

func (f *fakeRuns) Last() (pipeline.Summary, bool) {
	if f.last == nil {
		return pipeline.Summary{}, false
	}
	return *f.last, true
}

func newTestServer(t *testing.T, runs *fakeRuns) (*gin.Engine, *report.Writer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w, err := report.NewWriter(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{w.PlayerPath("Zavala"), w.PlayerPath("Lord Shaxx"), w.AggregatePath()} {
		if err := w.WriteHeader(p); err != nil {
			t.Fatal(err)
		}
	}
	return NewServer(context.Background(), runs, w).Router(), w
}

func do(r http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(rec, req)
	return rec
}

func TestPing(t *testing.T) {
	r, _ := newTestServer(t, &fakeRuns{})
	rec := do(r, http.MethodGet, "/ping")
	if rec.Code != http.StatusOK || rec.Body.String() != `{"ping":"pong"}` {
		t.Errorf("GET /ping = %d %s", rec.Code, rec.Body.String())
	}
}

func TestListReports(t *testing.T) {
	r, _ := newTestServer(t, &fakeRuns{})
	rec := do(r, http.MethodGet, "/reports")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /reports = %d", rec.Code)
	}
	var body struct {
		Reports []string `json:"reports"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Reports) != 3 {
		t.Errorf("reports = %v, want 3 names", body.Reports)
	}
}

func TestGetReport(t *testing.T) {
	r, w := newTestServer(t, &fakeRuns{})
	header, err := os.ReadFile(w.PlayerPath("Zavala"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		code     int
		resolved string
	}{
		{"exact", "/reports/Zavala", http.StatusOK, "Zavala"},
		{"with extension", "/reports/Zavala.csv", http.StatusOK, "Zavala"},
		{"close spelling", "/reports/zavalla", http.StatusOK, "Zavala"},
		{"clan report", "/reports/__clan__", http.StatusOK, report.AggregateName},
		{"unknown", "/reports/Savathun", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(r, http.MethodGet, tt.path)
			if rec.Code != tt.code {
				t.Fatalf("GET %s = %d, want %d", tt.path, rec.Code, tt.code)
			}
			if tt.code != http.StatusOK {
				return
			}
			if got := rec.Header().Get("X-Report-Name"); got != tt.resolved {
				t.Errorf("X-Report-Name = %s, want %s", got, tt.resolved)
			}
			if rec.Body.String() != string(header) {
				t.Errorf("body = %q, want header line", rec.Body.String())
			}
		})
	}
}

func TestStartRun(t *testing.T) {
	runs := &fakeRuns{called: make(chan struct{})}
	r, _ := newTestServer(t, runs)

	rec := do(r, http.MethodPost, "/runs")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("POST /runs = %d, want 202", rec.Code)
	}
	select {
	case <-runs.called:
	case <-time.After(time.Second):
		t.Fatal("run was not started")
	}
}

func TestStartRunWhileRunning(t *testing.T) {
	runs := &fakeRuns{running: true}
	r, _ := newTestServer(t, runs)

	rec := do(r, http.MethodPost, "/runs")
	if rec.Code != http.StatusConflict {
		t.Errorf("POST /runs = %d, want 409", rec.Code)
	}
	if runs.calls != 0 {
		t.Errorf("RunOnce called %d times", runs.calls)
	}
}

func TestLastRun(t *testing.T) {
	runs := &fakeRuns{}
	r, _ := newTestServer(t, runs)

	if rec := do(r, http.MethodGet, "/runs/last"); rec.Code != http.StatusNotFound {
		t.Errorf("GET /runs/last before a run = %d, want 404", rec.Code)
	}

	runs.last = &pipeline.Summary{Players: []pipeline.PlayerSummary{{Rows: 4}}}
	rec := do(r, http.MethodGet, "/runs/last")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /runs/last = %d", rec.Code)
	}
	var got pipeline.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Rows() != 4 {
		t.Errorf("Rows() = %d, want 4", got.Rows())
	}
}

func TestClosestReport(t *testing.T) {
	names := []string{"Zavala", "Ikora", "Lord Shaxx"}
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Ikora", "Ikora", true},
		{"lord shaxx", "Lord Shaxx", true},
		{"Ikoraa", "Ikora", true},
		{"Cayde-6", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := closestReport(tt.in, names)
			if got != tt.want || ok != tt.ok {
				t.Errorf("closestReport(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}
