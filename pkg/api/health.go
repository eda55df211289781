package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/triggr-io/triggr/pkg/events"
	"github.com/triggr-io/triggr/pkg/metrics"
	"github.com/triggr-io/triggr/pkg/storage"
)

// HealthServer is the internal-only HTTP surface spec §6 allows the
// core to carry: liveness, readiness, and Prometheus metrics. The
// console surface itself (projects, triggers, documents) is a Go
// contract consumed directly by an external transport layer, which is
// explicitly out of scope here.
type HealthServer struct {
	store  *storage.Store
	broker *events.Broker
	mux    *http.ServeMux
}

// NewHealthServer wires a health server against the running process's
// store and broker.
func NewHealthServer(store *storage.Store, broker *events.Broker) *HealthServer {
	mux := http.NewServeMux()
	hs := &HealthServer{store: store, broker: broker, mux: mux}

	mux.HandleFunc("/health", hs.healthHandler)
	mux.HandleFunc("/ready", hs.readyHandler)
	mux.Handle("/metrics", metrics.Handler())

	return hs
}

// Start runs the HTTP server until it errors or is shut down.
func (hs *HealthServer) Start(addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      hs.mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return server.ListenAndServe()
}

// HealthResponse is the /health liveness payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ReadyResponse is the /ready payload: per-tree check results plus an
// overall verdict.
type ReadyResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

func (hs *HealthServer) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Timestamp: time.Now().UTC()})
}

// readyHandler probes every tree with a cheap point lookup and reports
// the pub/sub broker's presence. A tree lookup error marks the process
// not ready: storage is on the critical path for every operation.
func (hs *HealthServer) readyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	checks := make(map[string]string)
	ready := true

	trees := map[string]*storage.Tree{
		"projects": hs.store.Projects,
		"users":    hs.store.Users,
		"app":      hs.store.App,
		"metadata": hs.store.Metadata,
		"triggers": hs.store.Triggers,
	}
	for name, tree := range trees {
		if _, err := tree.Get([]byte("__health_probe__")); err != nil {
			checks[name] = "error: " + err.Error()
			ready = false
			continue
		}
		checks[name] = "ok"
	}

	if hs.broker != nil {
		checks["broker"] = "ok"
	} else {
		checks["broker"] = "not initialized"
		ready = false
	}

	status := "ready"
	statusCode := http.StatusOK
	if !ready {
		status = "not ready"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, ReadyResponse{Status: status, Timestamp: time.Now().UTC(), Checks: checks})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// GetHandler returns the underlying mux for embedding elsewhere.
func (hs *HealthServer) GetHandler() http.Handler {
	return hs.mux
}
