package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"nodewalk/graph"
	"nodewalk/mapdoc"
	"nodewalk/view"
	"nodewalk/world"
)

type MoveRequest struct {
	Node graph.NodeID `json:"node"`
}

type ClickRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type MoveResponse struct {
	Success bool           `json:"success"`
	Player  world.Location `json:"player"`
	Message string         `json:"message,omitempty"`
}

type StateResponse struct {
	Session string     `json:"session"`
	Scene   view.Scene `json:"scene"`
}

// Server owns the single game state. Every input replaces the state value
// wholesale under the lock; readers take a snapshot.
type Server struct {
	mu      sync.RWMutex
	session uuid.UUID
	state   world.State

	initial world.State
}

// NewServer builds the graph for doc once and starts the first session
func NewServer(doc mapdoc.Document, threshold, simplify float64) *Server {
	g := graph.Build(doc.Nodes, threshold)
	decorations := view.SimplifyDecorations(doc.Decorations, simplify)

	initial := world.New(g, decorations)
	return &Server{
		session: uuid.New(),
		state:   initial,
		initial: initial,
	}
}

// SessionID returns the id of the running session
func (s *Server) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.String()
}

func (s *Server) snapshot() (uuid.UUID, world.State) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session, s.state
}

// apply resolves a target against the current state and moves there, all
// under one lock so the target always belongs to the state it is applied to
func (s *Server) apply(resolve func(world.State) (graph.NodeID, bool)) MoveResponse {
	s.mu.Lock()
	before := s.state
	target, ok := resolve(before)
	if ok {
		s.state = before.Move(target)
	}
	after := s.state
	s.mu.Unlock()

	if !ok {
		return MoveResponse{
			Success: false,
			Player:  after.Player,
			Message: "No node at pointer position",
		}
	}

	if after.Player == before.Player {
		log.Printf("   Move to node %d ignored (player on node %d)\n", target, before.Current())
		return MoveResponse{
			Success: false,
			Player:  after.Player,
			Message: "Node is not reachable from the current location",
		}
	}

	log.Printf("   Player moved %d -> %d\n", before.Current(), after.Current())
	return MoveResponse{Success: true, Player: after.Player}
}

// moveTo targets a node id directly
func moveTo(id graph.NodeID) func(world.State) (graph.NodeID, bool) {
	return func(world.State) (graph.NodeID, bool) {
		return id, true
	}
}

// clickAt targets whatever node lies under the pointer
func clickAt(p orb.Point) func(world.State) (graph.NodeID, bool) {
	return func(state world.State) (graph.NodeID, bool) {
		return view.HitTest(state.Graph, p)
	}
}

// Routes wires every endpoint behind the CORS middleware
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	mux.HandleFunc("/state", corsMiddleware(s.stateHandler))
	mux.HandleFunc("/move", corsMiddleware(s.moveHandler))
	mux.HandleFunc("/click", corsMiddleware(s.clickHandler))
	mux.HandleFunc("/reset", corsMiddleware(s.resetHandler))
	mux.HandleFunc("/edges", corsMiddleware(s.edgesHandler))
	mux.HandleFunc("/map.geojson", corsMiddleware(s.geojsonHandler))
	return mux
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("⚠️  Failed to write response: %v\n", err)
	}
}

// GET /health - Health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	session, state := s.snapshot()

	writeJSON(w, map[string]interface{}{
		"status":   "ready",
		"session":  session.String(),
		"numNodes": len(state.Graph.Nodes),
		"numEdges": state.Graph.Edges.Size(),
	})
}

// GET /state - Scene for the current state
func (s *Server) stateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, state := s.snapshot()
	writeJSON(w, StateResponse{
		Session: session.String(),
		Scene:   view.BuildScene(state),
	})
}

// POST /move - Move the player to a node
func (s *Server) moveHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	writeJSON(w, s.apply(moveTo(req.Node)))
}

// POST /click - Resolve a pointer position to a node and move there
func (s *Server) clickHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	writeJSON(w, s.apply(clickAt(orb.Point{req.X, req.Y})))
}

// POST /reset - Start a new session from the initial state
func (s *Server) resetHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	s.session = uuid.New()
	s.state = s.initial
	session := s.session
	s.mu.Unlock()

	log.Printf("🔄 New session %s\n", session)
	writeJSON(w, map[string]interface{}{
		"success": true,
		"session": session.String(),
	})
}

// GET /edges - Graph edges as line segments for visualization
func (s *Server) edgesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	_, state := s.snapshot()

	lines := make([][]orb.Point, 0)
	for _, seg := range state.Graph.EdgeLines() {
		lines = append(lines, []orb.Point{seg.P1, seg.P2})
	}

	writeJSON(w, map[string]interface{}{
		"success":  true,
		"lines":    lines,
		"numNodes": len(state.Graph.Nodes),
		"numEdges": len(lines),
	})
}

// GET /map.geojson - Map export
func (s *Server) geojsonHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	_, state := s.snapshot()
	data, err := view.ExportGeoJSON(state)
	if err != nil {
		log.Printf("❌ GeoJSON export failed: %v\n", err)
		http.Error(w, "Export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.Write(data)
}
