package cavitation

import (
	"encoding/json"
	"net/http"
)

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res := Assess(input.P1, input.P2, input.Pv, input.ValveType, input.ValveStyle)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
