package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRemoteLoadState(t *testing.T) {
	var gotPath, gotAPIKey, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Query().Get("save_key") != "eq.main_user" {
			t.Errorf("save_key filter=%q", r.URL.Query().Get("save_key"))
		}
		io.WriteString(w, `[{
			"save_key": "main_user",
			"xp_values": {"Reading": 5, "Admin Work": "4"},
			"debt_values": {"Skip Training": 2},
			"stats": {"Physical": {"PUSH": 45}},
			"daily_quests": {"date": "2026-03-02", "slots": [{"text": "Walk", "done": false}]},
			"derived": {"level": 2, "title": "Novice"}
		}]`)
	}))
	defer srv.Close()

	store := NewRemoteStore(srv.URL, "secret-key")
	st, err := store.LoadState(context.Background(), "main_user")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if gotPath != "/rest/v1/player_state" {
		t.Fatalf("path=%q", gotPath)
	}
	if gotAPIKey != "secret-key" || gotAuth != "Bearer secret-key" {
		t.Fatalf("auth headers=(%q,%q)", gotAPIKey, gotAuth)
	}
	if st.XPValues["Reading"] != 5 {
		t.Fatalf("Reading=%v, want 5", st.XPValues["Reading"])
	}
	// Numeric strings coerce on the way in.
	if st.XPValues["Admin Work"] != 4 {
		t.Fatalf("Admin Work=%v, want coerced 4", st.XPValues["Admin Work"])
	}
	if st.Stats["Physical"]["PUSH"] != 45 {
		t.Fatalf("PUSH=%d, want 45", st.Stats["Physical"]["PUSH"])
	}
	if st.DailyQuests == nil || st.DailyQuests.Date != "2026-03-02" {
		t.Fatalf("quests=%+v", st.DailyQuests)
	}
	if st.Derived == nil || st.Derived.Level != 2 {
		t.Fatalf("derived=%+v", st.Derived)
	}
}

func TestRemoteLoadStateNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	store := NewRemoteStore(srv.URL, "k")
	_, err := store.LoadState(context.Background(), "main_user")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestRemoteSaveUpsert(t *testing.T) {
	var gotPrefer, gotContentType string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method=%s, want POST", r.Method)
		}
		gotPrefer = r.Header.Get("Prefer")
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	store := NewRemoteStore(srv.URL+"/", "k") // trailing slash is trimmed
	err := store.Save(context.Background(), &PlayerState{
		SaveKey:    "main_user",
		XPValues:   map[string]float64{"Reading": 1.5},
		DebtValues: map[string]float64{},
	}, nil)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if gotPrefer != "resolution=merge-duplicates,return=minimal" {
		t.Fatalf("Prefer=%q", gotPrefer)
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type=%q", gotContentType)
	}
	if gotBody["save_key"] != "main_user" {
		t.Fatalf("body save_key=%v", gotBody["save_key"])
	}
	xp, _ := gotBody["xp_values"].(map[string]any)
	if xp["Reading"] != 1.5 {
		t.Fatalf("body Reading=%v", xp["Reading"])
	}
}

func TestRemoteSaveWritesEntriesAfterState(t *testing.T) {
	type request struct {
		path   string
		prefer string
		body   []byte
	}
	var requests []request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		requests = append(requests, request{path: r.URL.Path, prefer: r.Header.Get("Prefer"), body: raw})
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	store := NewRemoteStore(srv.URL, "k")
	err := store.Save(context.Background(), &PlayerState{
		SaveKey:    "main_user",
		XPValues:   map[string]float64{"Reading": 1},
		DebtValues: map[string]float64{},
	}, []LogEntry{{
		ID:        "abc",
		SaveKey:   "main_user",
		Kind:      "xp_adjusted",
		Payload:   map[string]any{"category": "Reading"},
		CreatedAt: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
	}})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if len(requests) != 2 {
		t.Fatalf("requests=%d, want state then log", len(requests))
	}
	if requests[0].path != "/rest/v1/player_state" || requests[1].path != "/rest/v1/activity_log" {
		t.Fatalf("paths=[%s %s]", requests[0].path, requests[1].path)
	}
	if requests[1].prefer != "return=minimal" {
		t.Fatalf("Prefer=%q", requests[1].prefer)
	}

	// Entries post as one json array.
	var rows []map[string]any
	if err := json.Unmarshal(requests[1].body, &rows); err != nil {
		t.Fatalf("log body: %v", err)
	}
	if len(rows) != 1 || rows[0]["id"] != "abc" || rows[0]["kind"] != "xp_adjusted" {
		t.Fatalf("log rows=%v", rows)
	}
}

func TestRemoteLoadLogEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("order") != "created_at.desc" {
			t.Errorf("order=%q", q.Get("order"))
		}
		if q.Get("limit") != "5" {
			t.Errorf("limit=%q", q.Get("limit"))
		}
		io.WriteString(w, `[
			{"id": "2", "save_key": "main_user", "kind": "debt_adjusted", "created_at": "2026-03-02T13:00:00Z"},
			{"id": "1", "save_key": "main_user", "kind": "xp_adjusted", "created_at": "2026-03-02T12:00:00Z"}
		]`)
	}))
	defer srv.Close()

	store := NewRemoteStore(srv.URL, "k")
	entries, err := store.LoadLogEntries(context.Background(), "main_user", 5)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "2" {
		t.Fatalf("entries=%+v", entries)
	}
}

func TestRemoteErrorsIncludeStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"message":"JWT expired"}`)
	}))
	defer srv.Close()

	store := NewRemoteStore(srv.URL, "stale")
	_, err := store.LoadState(context.Background(), "main_user")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "401") || !strings.Contains(err.Error(), "JWT expired") {
		t.Fatalf("err=%v, want status and body", err)
	}
}
