package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"stockproxy/internal/lookup"
	"stockproxy/internal/provider"
)

type lookuper interface {
	Lookup(ctx context.Context, ticker string) (provider.StockData, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

// stockDataHandler serves GET /api/stock_data/{ticker}.
type stockDataHandler struct {
	lookup  lookuper
	timeout time.Duration
}

func (h *stockDataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	data, err := h.lookup.Lookup(ctx, ticker)
	switch lookup.Classify(err) {
	case lookup.OutcomeSuccess:
		respondJSON(w, http.StatusOK, data)
	case lookup.OutcomeNotFound:
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

// newHandler builds the full HTTP stack: routes plus middleware.
func newHandler(l lookuper, logger *zap.Logger, requestTimeout time.Duration) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Handle("/stock_data/{ticker}", &stockDataHandler{lookup: l, timeout: requestTimeout}).Methods(http.MethodGet)

	return withJSONHeaders(withGzip(logRequests(logger, recoverPanic(logger, r))))
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
