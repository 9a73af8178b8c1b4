package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nodewalk/graph"
	"nodewalk/mapdoc"
	"nodewalk/world"
)

func newPlainServer() *Server {
	return NewServer(mapdoc.Document{Nodes: mapdoc.PlainNodes()}, graph.PlainThreshold, 0)
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeMove(t *testing.T, rec *httptest.ResponseRecorder) MoveResponse {
	t.Helper()
	var resp MoveResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return resp
}

func TestMoveEndpoint(t *testing.T) {
	srv := newPlainServer()
	h := srv.Routes()

	resp := decodeMove(t, post(t, h, "/move", `{"node": 1}`))
	if !resp.Success || resp.Player.Node != 1 {
		t.Errorf("Expected move to node 1, got %+v", resp)
	}

	resp = decodeMove(t, post(t, h, "/move", `{"node": 4}`))
	if resp.Success || resp.Player.Node != 1 {
		t.Errorf("Expected illegal move to leave player on node 1, got %+v", resp)
	}

	rec := post(t, h, "/move", `not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad body, got %d", rec.Code)
	}
}

func TestClickEndpoint(t *testing.T) {
	srv := newPlainServer()
	h := srv.Routes()

	resp := decodeMove(t, post(t, h, "/click", `{"x": 96, "y": 198}`))
	if !resp.Success || resp.Player.Node != 4 {
		t.Errorf("Expected click to move to node 4, got %+v", resp)
	}

	resp = decodeMove(t, post(t, h, "/click", `{"x": 400, "y": 400}`))
	if resp.Success {
		t.Errorf("Expected click on empty space to fail, got %+v", resp)
	}
}

func TestClickResolvesAgainstCurrentState(t *testing.T) {
	srv := newPlainServer()
	h := srv.Routes()

	// Node 4 is not reachable from node 1, only from node 0
	post(t, h, "/move", `{"node": 1}`)
	post(t, h, "/reset", ``)

	resp := decodeMove(t, post(t, h, "/click", `{"x": 96, "y": 198}`))
	if !resp.Success || resp.Player.Node != 4 {
		t.Errorf("Expected click after reset to move 0 -> 4, got %+v", resp)
	}

	var seen graph.NodeID
	resp = srv.apply(func(state world.State) (graph.NodeID, bool) {
		seen = state.Current()
		return 0, true
	})
	if seen != 4 {
		t.Errorf("Expected target to be resolved on node 4, got %d", seen)
	}
	if !resp.Success || resp.Player.Node != 0 {
		t.Errorf("Expected move back to node 0, got %+v", resp)
	}
}

func TestStateAndReset(t *testing.T) {
	srv := newPlainServer()
	h := srv.Routes()
	first := srv.SessionID()

	post(t, h, "/move", `{"node": 1}`)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/state", nil))

	var state StateResponse
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatalf("Failed to decode state: %v", err)
	}
	if state.Session != first {
		t.Errorf("Expected session %s, got %s", first, state.Session)
	}
	if state.Scene.Player.Node != 1 {
		t.Errorf("Expected player on node 1, got %d", state.Scene.Player.Node)
	}
	if len(state.Scene.Nodes) != 5 {
		t.Errorf("Expected 5 scene nodes, got %d", len(state.Scene.Nodes))
	}

	post(t, h, "/reset", ``)
	if srv.SessionID() == first {
		t.Error("Expected a new session id after reset")
	}
	if _, s := srv.snapshot(); s.Current() != 0 {
		t.Errorf("Expected reset to return to node 0, got %d", s.Current())
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newPlainServer().Routes()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/move", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/move", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected preflight 200, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS header on preflight")
	}
}

func TestEdgesAndGeoJSON(t *testing.T) {
	h := newPlainServer().Routes()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/edges", nil))

	var edges struct {
		NumEdges int `json:"numEdges"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&edges); err != nil {
		t.Fatalf("Failed to decode edges: %v", err)
	}
	if edges.NumEdges != 6 {
		t.Errorf("Expected 6 edge lines, got %d", edges.NumEdges)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/map.geojson", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/geo+json" {
		t.Errorf("Unexpected content type %s", ct)
	}
}

func TestLoadMap(t *testing.T) {
	doc, threshold := loadMap(Config{Map: "plain"})
	if len(doc.Nodes) != 5 || threshold != graph.PlainThreshold {
		t.Errorf("Unexpected plain map: %d nodes, threshold %v", len(doc.Nodes), threshold)
	}

	doc, threshold = loadMap(Config{Map: "island", Threshold: 90})
	if len(doc.Nodes) != 10 || threshold != 90 {
		t.Errorf("Unexpected island map: %d nodes, threshold %v", len(doc.Nodes), threshold)
	}

	doc, _ = loadMap(Config{Map: "/does/not/exist.svg"})
	if len(doc.Nodes) != 0 {
		t.Errorf("Expected empty map for missing file, got %d nodes", len(doc.Nodes))
	}
}
