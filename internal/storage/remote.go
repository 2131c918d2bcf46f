package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// remoteTimeout bounds every call to the remote store. There is no retry
// and no cancellation beyond the timeout; a slow call simply fails and the
// caller downgrades it to a warning.
const remoteTimeout = 15 * time.Second

// RemoteStore persists through a Supabase REST endpoint: one
// `player_state` row per save key plus an insert-only `activity_log`
// table, both with JSON columns.
type RemoteStore struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewRemoteStore(baseURL, serviceRoleKey string) *RemoteStore {
	return &RemoteStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  serviceRoleKey,
		client:  &http.Client{Timeout: remoteTimeout},
	}
}

type remoteStateRow struct {
	SaveKey     string           `json:"save_key"`
	XPValues    map[string]any   `json:"xp_values"`
	DebtValues  map[string]any   `json:"debt_values"`
	Stats       map[string]any   `json:"stats,omitempty"`
	DailyQuests *DailyQuests     `json:"daily_quests,omitempty"`
	Derived     *DerivedSnapshot `json:"derived,omitempty"`
}

type remoteLogRow struct {
	ID        string           `json:"id"`
	SaveKey   string           `json:"save_key"`
	Kind      string           `json:"kind"`
	Payload   map[string]any   `json:"payload,omitempty"`
	Snapshot  *DerivedSnapshot `json:"snapshot,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

func (r *RemoteStore) LoadState(ctx context.Context, saveKey string) (*PlayerState, error) {
	params := url.Values{}
	params.Set("save_key", "eq."+saveKey)
	params.Set("select", "save_key,xp_values,debt_values,stats,daily_quests,derived")

	body, err := r.do(ctx, http.MethodGet, "/rest/v1/player_state?"+params.Encode(), nil, nil)
	if err != nil {
		return nil, err
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("state decode: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	// Each JSON column is decoded independently so one malformed column
	// never discards the rest of the row.
	var loose struct {
		XPValues    json.RawMessage `json:"xp_values"`
		DebtValues  json.RawMessage `json:"debt_values"`
		Stats       json.RawMessage `json:"stats"`
		DailyQuests json.RawMessage `json:"daily_quests"`
		Derived     json.RawMessage `json:"derived"`
	}
	if err := json.Unmarshal(rows[0], &loose); err != nil {
		return nil, fmt.Errorf("state decode: %w", err)
	}

	return &PlayerState{
		SaveKey:     saveKey,
		XPValues:    decodeNumberMap(loose.XPValues),
		DebtValues:  decodeNumberMap(loose.DebtValues),
		Stats:       decodeStats(loose.Stats),
		DailyQuests: decodeQuests(loose.DailyQuests),
		Derived:     decodeSnapshot(loose.Derived),
	}, nil
}

// Save writes the snapshot and the entries in separate requests; PostgREST
// has no cross-table transaction, so the state row lands first.
func (r *RemoteStore) Save(ctx context.Context, state *PlayerState, entries []LogEntry) error {
	row := remoteStateRow{
		SaveKey:     state.SaveKey,
		XPValues:    toAnyMap(state.XPValues),
		DebtValues:  toAnyMap(state.DebtValues),
		DailyQuests: state.DailyQuests,
		Derived:     state.Derived,
	}
	if state.Stats != nil {
		row.Stats = make(map[string]any, len(state.Stats))
		for g, codes := range state.Stats {
			row.Stats[g] = codes
		}
	}

	headers := map[string]string{"Prefer": "resolution=merge-duplicates,return=minimal"}
	if _, err := r.do(ctx, http.MethodPost, "/rest/v1/player_state", row, headers); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	rows := make([]remoteLogRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, remoteLogRow{
			ID:        entry.ID,
			SaveKey:   entry.SaveKey,
			Kind:      entry.Kind,
			Payload:   entry.Payload,
			Snapshot:  entry.Snapshot,
			CreatedAt: entry.CreatedAt.UTC(),
		})
	}
	headers = map[string]string{"Prefer": "return=minimal"}
	_, err := r.do(ctx, http.MethodPost, "/rest/v1/activity_log", rows, headers)
	return err
}

func (r *RemoteStore) LoadLogEntries(ctx context.Context, saveKey string, limit int) ([]LogEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	params := url.Values{}
	params.Set("save_key", "eq."+saveKey)
	params.Set("order", "created_at.desc")
	params.Set("limit", strconv.Itoa(limit))

	body, err := r.do(ctx, http.MethodGet, "/rest/v1/activity_log?"+params.Encode(), nil, nil)
	if err != nil {
		return nil, err
	}

	var rows []remoteLogRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("log decode: %w", err)
	}
	out := make([]LogEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, LogEntry{
			ID:        row.ID,
			SaveKey:   row.SaveKey,
			Kind:      row.Kind,
			Payload:   row.Payload,
			Snapshot:  row.Snapshot,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

func (r *RemoteStore) do(ctx context.Context, method, path string, payload any, headers map[string]string) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("remote encode: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("remote request: %w", err)
	}
	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("remote read: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("remote %s %s failed (%d): %s", method, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

func toAnyMap(m map[string]float64) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
