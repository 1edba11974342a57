package domain

import (
	"encoding/json"
	"math"
	"time"
)

// Result is the long-lived output of one basket analysis, handed to the
// explanation and audit collaborators.
type Result struct {
	BasketID           string       `json:"basket_id"`
	Emissions          float64      `json:"emissions"`
	EmissionsOptimized float64      `json:"emissions_optimized"`
	COG                float64      `json:"cog"`
	COGRatio           float64      `json:"cog_ratio"`
	BAE                float64      `json:"bae"`
	RACS               float64      `json:"racs"`
	MACBasket          float64      `json:"mac_basket"` // +Inf when no net reduction
	HealthScore        float64      `json:"health_score"`
	CHCS               float64      `json:"chcs"`
	CostOriginal       float64      `json:"cost_original"`
	CostOptimized      float64      `json:"cost_optimized"`
	Swaps              []SwapRecord `json:"swaps"`
	AcceptanceRate     float64      `json:"acceptance_rate"`
}

// resultAlias avoids marshaling recursion
type resultAlias Result

// resultJSON carries MACBasket as a nullable field: a +Inf abatement cost
// (no net reduction) is encoded as null, which encoding/json cannot
// express as a float.
type resultJSON struct {
	resultAlias
	MACBasket *float64 `json:"mac_basket"`
}

// MarshalJSON encodes an infinite MACBasket as null
func (r Result) MarshalJSON() ([]byte, error) {
	payload := resultJSON{resultAlias: resultAlias(r)}
	if !math.IsInf(r.MACBasket, 0) {
		mac := r.MACBasket
		payload.MACBasket = &mac
	}
	return json.Marshal(payload)
}

// UnmarshalJSON decodes a null MACBasket back to +Inf
func (r *Result) UnmarshalJSON(data []byte) error {
	var payload resultJSON
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	*r = Result(payload.resultAlias)
	if payload.MACBasket != nil {
		r.MACBasket = *payload.MACBasket
	} else {
		r.MACBasket = math.Inf(1)
	}
	return nil
}

// AuditEvent is the record emitted to the audit collaborator after each
// analysis. The engine only emits it; persistence is the logger's problem.
type AuditEvent struct {
	ID        string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Timestamp time.Time       `json:"timestamp"`
	BasketID  string          `json:"basket_id"`
	Emissions BasketEmissions `json:"emissions_data"`
	Result    *Result         `json:"optimization_result,omitempty"`
}
