package noise

import (
	"encoding/json"
	"net/http"
)

type Handler struct {
	// DefaultMethod applies when the request does not select one.
	DefaultMethod Method
}

type request struct {
	Input  Input  `json:"input"`
	Sizing Sizing `json:"sizing"`
	Method Method `json:"method"`
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	method := req.Method
	if method == "" {
		method = h.DefaultMethod
	}
	res := Predict(req.Input, req.Sizing, method)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
