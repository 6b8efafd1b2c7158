package server

import (
	"net/http"

	"github.com/dronemarket/catalog/pkg/common"
)

// CreateHandler wires all routes.
func (ws *WebServer) CreateHandler() http.Handler {
	srv := http.NewServeMux()

	srv.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv.HandleFunc("/api/search", common.JsonHandler(ws.Search))
	srv.HandleFunc("/api/facets", common.JsonHandler(ws.Facets))
	srv.HandleFunc("GET /api/product/{id}", common.JsonHandler(ws.GetProduct))
	srv.HandleFunc("GET /api/product", common.JsonHandler(ws.GetProduct))

	srv.HandleFunc("POST /api/session", common.JsonHandler(ws.CreateSession))
	srv.HandleFunc("POST /api/session/toggle", common.JsonHandler(ws.SessionToggle))
	srv.HandleFunc("POST /api/session/search", common.JsonHandler(ws.SessionSearch))
	srv.HandleFunc("POST /api/session/price", common.JsonHandler(ws.SessionPrice))
	srv.HandleFunc("POST /api/session/sort", common.JsonHandler(ws.SessionSort))
	srv.HandleFunc("POST /api/session/reset", common.JsonHandler(ws.SessionReset))
	srv.HandleFunc("GET /api/session/state", common.JsonHandler(ws.SessionState))

	srv.HandleFunc("POST /admin/reload", common.JsonHandler(ws.TriggerReload))

	return srv
}
