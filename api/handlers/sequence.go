package handlers

import (
	"net/http"

	"github.com/aria-lang/nucmer-go/pkg/nucmer"
)

// SequenceSetRequest represents a request with multiple sequences.
type SequenceSetRequest struct {
	Sequences []SequenceInput `json:"sequences"`
}

// SequenceSetStats handles sequence set statistics requests.
func (h *Handler) SequenceSetStats(w http.ResponseWriter, r *http.Request) {
	var req SequenceSetRequest
	if !decode(w, r, &req) {
		return
	}

	sequences, err := parseSequences("sequence", req.Sequences)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	stats, err := nucmer.SequenceSetStats(sequences)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, stats)
}
