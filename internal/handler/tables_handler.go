package handlers

import (
	"log"
	"net/http"
)

type HealthResponse struct {
	Status        string   `json:"status"`
	CountTables   int      `json:"countTables,omitempty"`
	MissingTables []string `json:"missingTables,omitempty"`
}

func (h *Handlers) TablesHandler(w http.ResponseWriter, r *http.Request) {
	status, err := h.TablesService.SchemaStatus(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, status, http.StatusOK)
}

// HealthHandler answers 503 until the database is reachable and migrated.
func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	status, err := h.TablesService.SchemaStatus(r.Context())
	if err != nil {
		log.Printf("Проверка состояния БД не прошла: %v", err)
		writeSuccess(w, HealthResponse{Status: "unavailable"}, http.StatusServiceUnavailable)
		return
	}

	if !status.Ready() {
		writeSuccess(w, HealthResponse{
			Status:        "degraded",
			CountTables:   status.CountTables,
			MissingTables: status.MissingTables,
		}, http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, HealthResponse{Status: "ok", CountTables: status.CountTables}, http.StatusOK)
}
