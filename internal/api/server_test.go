package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"scribe/internal/api"
	"scribe/internal/config"
	"scribe/internal/queue"
	"scribe/internal/testsupport"
)

func newTestServer(t *testing.T, token string) (*httptest.Server, *queue.Store) {
	t.Helper()
	cfg := testsupport.NewConfig(t, testsupport.WithAPIToken(token))
	store := testsupport.MustOpenStore(t, cfg)

	server := api.NewServer(cfg, store, nil)
	if server == nil {
		t.Fatal("expected server")
	}
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func TestNewServerNilWithoutBind(t *testing.T) {
	cfg := config.Default()
	cfg.APIBind = ""
	if server := api.NewServer(&cfg, nil, nil); server != nil {
		t.Fatal("expected nil server without bind address")
	}
}

func TestSubmitListAndFetch(t *testing.T) {
	ts, _ := newTestServer(t, "")

	body := bytes.NewBufferString(`{"path": "/media/interview.wav"}`)
	resp, err := http.Post(ts.URL+"/api/jobs", "application/json", body)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var created api.JobResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Job.Status != "pending" || created.Job.Title != "Interview" {
		t.Fatalf("created = %+v", created.Job)
	}

	resp, err = http.Get(ts.URL + "/api/jobs")
	if err != nil {
		t.Fatalf("GET list: %v", err)
	}
	defer resp.Body.Close()
	var listed api.JobListResponse
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed.Jobs) != 1 {
		t.Fatalf("jobs = %+v", listed.Jobs)
	}

	resp, err = http.Get(ts.URL + "/api/jobs/" + created.Job.UUID)
	if err != nil {
		t.Fatalf("GET job: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("fetch status = %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/api/jobs/not-a-real-uuid")
	if err != nil {
		t.Fatalf("GET missing: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing status = %d", resp.StatusCode)
	}
}

func TestSubmitRejectsBadRequests(t *testing.T) {
	ts, _ := newTestServer(t, "")

	for _, payload := range []string{`{}`, `{"path": "/media/notes.txt"}`, `not json`} {
		resp, err := http.Post(ts.URL+"/api/jobs", "application/json", bytes.NewBufferString(payload))
		if err != nil {
			t.Fatalf("POST: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("payload %q status = %d", payload, resp.StatusCode)
		}
	}
}

func TestListRejectsUnknownStatus(t *testing.T) {
	ts, _ := newTestServer(t, "")

	resp, err := http.Get(ts.URL + "/api/jobs?status=bogus")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestHealthCounts(t *testing.T) {
	ts, store := newTestServer(t, "")
	ctx := context.Background()

	job := testsupport.MustAddJob(t, store, "/media/a.wav")
	testsupport.MustAddJob(t, store, "/media/b.wav")
	_ = store.MarkFailed(ctx, job.ID, "boom")

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET health: %v", err)
	}
	defer resp.Body.Close()
	var health api.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if health.Total != 2 || health.Pending != 1 || health.Failed != 1 {
		t.Fatalf("health = %+v", health)
	}
}

func TestTokenAuthentication(t *testing.T) {
	ts, _ := newTestServer(t, "secret")

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/health", nil)
	req.Header.Set("Authorization", "Bearer secret")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET with token: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("authenticated status = %d", resp.StatusCode)
	}
}
