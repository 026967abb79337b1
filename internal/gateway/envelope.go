package gateway

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"
)

// Envelope is the body of every gateway response. The HTTP status always
// equals Code.
type Envelope struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

// WriteEnvelope writes env with env.Code as the HTTP status.
func WriteEnvelope(w http.ResponseWriter, env Envelope) {
	respondJSON(w, env.Code, env)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// amount renders a decimal as a bare JSON number.
func amount(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
