package recommend

import (
	"encoding/json"
	"net/http"
)

type Handler struct{}

type request struct {
	P1          float64 `json:"p1"`
	Dp          float64 `json:"dp"`
	ValveType   string  `json:"valve_type"`
	CvRequired  float64 `json:"cv_required"`
	RatedCv     float64 `json:"rated_cv"`
	ValveDp     float64 `json:"valve_dp"`
	SystemDp    float64 `json:"system_dp"`
	ServiceType string  `json:"service_type"`
	Criticality string  `json:"process_criticality"`
	Expansion   string  `json:"future_expansion"`
}

type response struct {
	Characteristic string              `json:"characteristic"`
	Scenarios      MultiScenarioResult `json:"scenarios"`
	Authority      *AuthorityResult    `json:"authority,omitempty"`
	SafetyFactor   SafetyFactorResult  `json:"safety_factor"`
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.CvRequired <= 0 || req.RatedCv <= 0 {
		http.Error(w, "cv_required and rated_cv must be positive", http.StatusBadRequest)
		return
	}

	resp := response{
		Characteristic: Characteristic(req.P1, req.Dp, req.ValveType),
		Scenarios:      MultiScenario(req.CvRequired, req.RatedCv),
		SafetyFactor:   SafetyFactor(req.ServiceType, req.Criticality, req.Expansion),
	}
	if req.SystemDp > 0 {
		authority := Authority(req.ValveDp, req.SystemDp)
		resp.Authority = &authority
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
