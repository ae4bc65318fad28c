package reportserver

import (
	"errors"
	"net/http"

	"rowpost/internal/report"
	"rowpost/internal/runstore"

	"github.com/a-h/templ"
)

// NewHandler builds the HTTP handler serving the report page and DuckDB file.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Store == nil {
		return nil, errors.New("reportserver: store is required")
	}

	mux := http.NewServeMux()
	mux.Handle("/", serveIndex(cfg.Store))
	mux.Handle("/data/db.duckdb", serveDatabase(cfg.Store.Path()))
	return mux, nil
}

// serveIndex renders the runs overview from the store.
func serveIndex(store *runstore.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		runs, err := store.ListRuns(r.Context())
		if err != nil {
			http.Error(w, "list runs: "+err.Error(), http.StatusInternalServerError)
			return
		}
		templ.Handler(report.ReportPage(runs)).ServeHTTP(w, r)
	})
}

// serveDatabase serves the DuckDB file from disk for browser-side processing.
func serveDatabase(dbPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		http.ServeFile(w, r, dbPath)
	})
}
