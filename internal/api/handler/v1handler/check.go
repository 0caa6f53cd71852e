package v1handler

import (
	"encoding/json"
	"net/http"
	"urlcheck/pkg/serrors"
)

// CreateCheckRequest is the JSON body of POST /v1/checks.
type CreateCheckRequest struct {
	// URL is the address to check. A missing scheme defaults to https.
	URL string `json:"url"`
	// ForceRecheck bypasses the cache and performs a full check.
	ForceRecheck bool `json:"force_recheck"`
}

// CreateCheck determines the reputation of a URL, serving from the cache when
// possible. The response is the CheckResult shape from pkg/domain.
func (h *Handler) CreateCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body"))

		return
	}

	res, err := h.deps.Checker.Check(ctx, req.URL, req.ForceRecheck)
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	writeJSON(ctx, w, http.StatusOK, res)
}
