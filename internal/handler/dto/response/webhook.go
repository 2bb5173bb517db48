package response

import (
	"serial-inventory/internal/usecase/commands"
)

type ShortfallResponse struct {
	VariantID string `json:"variant_id"`
	Requested int    `json:"requested"`
	Matched   int    `json:"matched"`
}

type ReconcileResponse struct {
	Topic        string              `json:"topic"`
	OrderID      string              `json:"order_id"`
	Duplicate    bool                `json:"duplicate"`
	Count        int                 `json:"count"`
	Skipped      []string            `json:"skipped,omitempty"`
	Shortfalls   []ShortfallResponse `json:"shortfalls,omitempty"`
	ManualReview bool                `json:"manual_review"`
}

func FromReconcileResult(r *commands.ReconcileResult) *ReconcileResponse {
	res := &ReconcileResponse{
		Topic:        string(r.Topic),
		OrderID:      r.OrderID,
		Duplicate:    r.Duplicate,
		Count:        r.Outcome.Count,
		Skipped:      r.Outcome.Skipped,
		ManualReview: r.Outcome.ManualReview,
	}
	for _, s := range r.Outcome.Shortfalls {
		res.Shortfalls = append(res.Shortfalls, ShortfallResponse(s))
	}
	return res
}
