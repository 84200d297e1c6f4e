// Package handlers provides HTTP handlers for the nucmer API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aria-lang/nucmer-go/internal/output"
	"github.com/aria-lang/nucmer-go/internal/stats"
	"github.com/aria-lang/nucmer-go/pkg/nucmer"
)

// maxBodyBytes bounds the size of a request body.
const maxBodyBytes = 256 << 20

// Handler serves alignment requests with a base configuration that requests
// may override.
type Handler struct {
	Options nucmer.Options
}

// New creates a Handler.
func New(opts nucmer.Options) *Handler {
	return &Handler{Options: opts}
}

// Routes registers the endpoints of h on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/align", h.Align)
	r.Post("/score", h.Score)
	r.Post("/stats", h.SequenceSetStats)
}

// SequenceInput is one named sequence of a request.
type SequenceInput struct {
	ID       string `json:"id"`
	Sequence string `json:"sequence"`
}

// OptionsInput overrides the base configuration. Zero values keep it.
type OptionsInput struct {
	MinLength   int  `json:"min_length"`
	Reverse     bool `json:"reverse"`
	BreakLength int  `json:"break_length"`
	MaxLength   int  `json:"max_length"`
}

// AlignmentRequest represents an alignment request.
type AlignmentRequest struct {
	References []SequenceInput `json:"references"`
	Queries    []SequenceInput `json:"queries"`
	Options    OptionsInput    `json:"options"`
}

// AlignmentResponse represents the response for alignment.
type AlignmentResponse struct {
	Alignments []output.Record       `json:"alignments"`
	Stats      *stats.AlignmentStats `json:"stats"`
}

// Align handles alignment requests.
func (h *Handler) Align(w http.ResponseWriter, r *http.Request) {
	var req AlignmentRequest
	if !decode(w, r, &req) {
		return
	}

	refs, err := parseSequences("reference", req.References)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	queries, err := parseSequences("query", req.Queries)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	opts := h.Options
	if req.Options.MinLength > 0 {
		opts.LengthOfMUM = req.Options.MinLength
	}
	if req.Options.BreakLength > 0 {
		opts.BreakLength = req.Options.BreakLength
	}
	if req.Options.MaxLength > 0 {
		opts.MaximumAlignmentLength = req.Options.MaxLength
	}
	opts.IncludeReverse = opts.IncludeReverse || req.Options.Reverse
	opts.OnQueryDone = nil

	results, err := nucmer.Align(r.Context(), refs, queries, opts)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}

	writeJSON(w, AlignmentResponse{
		Alignments: output.Records(results),
		Stats:      nucmer.AlignmentStats(refs, results),
	})
}

// ScoreRequest represents a request to score two gapped sequences.
type ScoreRequest struct {
	First     string `json:"first"`
	Second    string `json:"second"`
	Affine    *bool  `json:"affine"`
	GapOpen   *int   `json:"gap_open"`
	GapExtend *int   `json:"gap_extend"`
}

// ScoreResponse represents the response for alignment score.
type ScoreResponse struct {
	Score int `json:"score"`
}

// Score handles alignment score requests.
func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if !decode(w, r, &req) {
		return
	}

	opts := h.Options
	if req.Affine != nil {
		opts.IsAlign = *req.Affine
	}
	if req.GapOpen != nil {
		opts.GapOpenCost = *req.GapOpen
	}
	if req.GapExtend != nil {
		opts.GapExtensionCost = *req.GapExtend
	}

	score, err := nucmer.Score(req.First, req.Second, opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, ScoreResponse{Score: score})
}

func parseSequences(kind string, inputs []SequenceInput) ([]*nucmer.Sequence, error) {
	seqs := make([]*nucmer.Sequence, 0, len(inputs))
	for i, in := range inputs {
		id := in.ID
		if id == "" {
			id = fmt.Sprintf("%s%d", kind, i+1)
		}
		s, err := nucmer.ParseSequence(in.Sequence, id, "")
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", kind, id, err)
		}
		seqs = append(seqs, s)
	}
	return seqs, nil
}

func statusOf(err error) int {
	var inputErr nucmer.InputError
	switch {
	case errors.As(err, &inputErr):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
}
