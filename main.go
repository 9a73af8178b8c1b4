package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"nodewalk/graph"
	"nodewalk/mapdoc"
)

// Config holds the shell's command-line settings
type Config struct {
	Addr      string
	Map       string
	Threshold float64
	Simplify  float64
}

func parseConfig() Config {
	var cfg Config
	flag.StringVar(&cfg.Addr, "addr", ":8080", "listen address")
	flag.StringVar(&cfg.Map, "map", "island", "map to play: island, plain, or a path to an SVG document")
	flag.Float64Var(&cfg.Threshold, "threshold", 0, "edge distance threshold (0 picks the map's default)")
	flag.Float64Var(&cfg.Simplify, "simplify", 0, "Douglas-Peucker epsilon for decoration outlines (0 disables)")
	flag.Parse()
	return cfg
}

// loadMap resolves the -map flag into a document and its distance threshold
func loadMap(cfg Config) (mapdoc.Document, float64) {
	var (
		doc       mapdoc.Document
		threshold float64
	)

	switch cfg.Map {
	case "plain":
		doc = mapdoc.Document{Nodes: mapdoc.PlainNodes()}
		threshold = graph.PlainThreshold
	case "island", "":
		doc = mapdoc.Island()
		threshold = graph.DecoratedThreshold
	default:
		data, err := os.ReadFile(cfg.Map)
		if err != nil {
			log.Printf("⚠️  Failed to read %s: %v\n", cfg.Map, err)
		}
		doc = mapdoc.Load(string(data))
		threshold = graph.DecoratedThreshold
	}

	if cfg.Threshold > 0 {
		threshold = cfg.Threshold
	}
	return doc, threshold
}

func main() {
	cfg := parseConfig()

	log.Println("========================================")
	log.Println("🚀 Node Map Game Server")
	log.Println("========================================")

	doc, threshold := loadMap(cfg)
	log.Printf("🗺️  Building map graph (threshold %.1f)...\n", threshold)

	srv := NewServer(doc, threshold, cfg.Simplify)

	log.Printf("✅ Session %s ready\n", srv.SessionID())
	log.Printf("Server starting on %s\n", cfg.Addr)
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  GET  /state        - Current scene (nodes, edges, decorations)")
	log.Println("  POST /move         - Move the player to a node: {\"node\": N}")
	log.Println("  POST /click        - Move via pointer position: {\"x\": X, \"y\": Y}")
	log.Println("  POST /reset        - Start a new session on the same map")
	log.Println("  GET  /edges        - Undirected edge lines")
	log.Println("  GET  /map.geojson  - Map export as GeoJSON")
	log.Println("  GET  /health       - Check server status")
	log.Println("")
	log.Println("CORS enabled for all origins")
	log.Println("========================================")

	if err := http.ListenAndServe(cfg.Addr, srv.Routes()); err != nil {
		log.Fatal(err)
	}
}
