package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hikarukin/blogspace/internal/blogservice"
	"github.com/hikarukin/blogspace/internal/notifyservice"
	"github.com/hikarukin/blogspace/internal/store"
	"github.com/hikarukin/blogspace/internal/userservice"
)

// newTestApplication builds the app on the volatile store, which is also how
// the fallback path behaves when mongodb is unreachable at startup.
func newTestApplication(t *testing.T) *application {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st := store.NewMemoryStore()

	hub := notifyservice.NewHub(logger)
	go hub.Run()

	notifier := notifyservice.NewNotificationService(st, hub, logger)

	return &application{
		config:        &Config{Port: "5000", Environment: "test", SessionTTL: time.Hour},
		logger:        logger,
		store:         st,
		sessions:      userservice.NewSessionManager(time.Hour),
		userService:   userservice.NewUserService(st),
		blogService:   blogservice.NewBlogService(st, notifier),
		notifyService: notifier,
		hub:           hub,
	}
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

// client returns an http client with its own cookie jar, i.e. one logical
// browser session.
func (ts *testServer) client(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}

	return &http.Client{Jar: jar}
}

func readResponse(t *testing.T, res *http.Response) (int, []byte) {
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, body
}

func (ts *testServer) post(t *testing.T, client *http.Client, path string, data any) (int, []byte) {
	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatal(err)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) get(t *testing.T, client *http.Client, path string) (int, []byte) {
	res, err := client.Get(ts.URL + path)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func decodeJSON(t *testing.T, body []byte, dst any) {
	if err := json.Unmarshal(body, dst); err != nil {
		t.Fatalf("could not decode response %q: %v", body, err)
	}
}
