package handlers

import (
	"encoding/json"
	"net/http"
)

// GetCompanies mounts once and returns the settled state as JSON.
func (controller *Controller) GetCompanies(w http.ResponseWriter, r *http.Request) {
	state, ok := controller.mount(r)
	if !ok {
		return
	}

	status := http.StatusOK
	switch {
	case !state.Terminal():
		status = http.StatusAccepted
	case state.Failed():
		status = http.StatusBadGateway
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(state)
}

func (controller *Controller) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}
