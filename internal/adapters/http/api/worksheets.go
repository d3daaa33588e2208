package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/LeifStrom/hiring/internal/domain/model"
)

// ratingsRequest mirrors the JSON body of PUT .../ratings.
type ratingsRequest struct {
	Throwing        int `json:"throwing"`
	Strength        int `json:"strength"`
	Data            int `json:"data"`
	Aptitude        int `json:"aptitude"`
	Professionalism int `json:"professionalism"`
	CultureFit      int `json:"culture_fit"`
	Trust           int `json:"trust"`
}

func (r ratingsRequest) toModel() model.Ratings {
	return model.Ratings{
		Throwing:        r.Throwing,
		Strength:        r.Strength,
		Data:            r.Data,
		Aptitude:        r.Aptitude,
		Professionalism: r.Professionalism,
		CultureFit:      r.CultureFit,
		Trust:           r.Trust,
	}
}

// moveRequest mirrors the JSON body of POST .../move.
type moveRequest struct {
	To string `json:"to"`
}

// applicantResponse is the read shape for one worksheet row.
type applicantResponse struct {
	Name      string         `json:"name"`
	AppliedOn string         `json:"applied_on,omitempty"`
	BornOn    string         `json:"born_on,omitempty"`
	Ratings   ratingsRequest `json:"ratings"`
	Score     float64        `json:"score"`
}

func toApplicantResponse(a model.Applicant) applicantResponse {
	resp := applicantResponse{
		Name:  a.Name,
		Score: a.Score,
		Ratings: ratingsRequest{
			Throwing:        a.Ratings.Throwing,
			Strength:        a.Ratings.Strength,
			Data:            a.Ratings.Data,
			Aptitude:        a.Ratings.Aptitude,
			Professionalism: a.Ratings.Professionalism,
			CultureFit:      a.Ratings.CultureFit,
			Trust:           a.Ratings.Trust,
		},
	}
	if !a.AppliedOn.IsZero() {
		resp.AppliedOn = a.AppliedOn.Format(model.DateLayout)
	}
	if !a.BornOn.IsZero() {
		resp.BornOn = a.BornOn.Format(model.DateLayout)
	}
	return resp
}

// WorksheetsHandler handles all /worksheets routes.
type WorksheetsHandler struct {
	deps Dependencies
}

// NewWorksheetsHandler creates a new worksheets handler.
func NewWorksheetsHandler(deps Dependencies) *WorksheetsHandler {
	return &WorksheetsHandler{deps: deps}
}

// HandleListWorksheets handles GET /worksheets requests.
func (h *WorksheetsHandler) HandleListWorksheets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"worksheets": h.deps.Worksheets()})
}

// HandleWorksheet dispatches every route under /worksheets/:
//
//	GET  /worksheets/{ws}/applicants
//	PUT  /worksheets/{ws}/applicants/{name}/ratings
//	POST /worksheets/{ws}/applicants/{name}/move
//	GET  /worksheets/{ws}/top?limit=N
func (h *WorksheetsHandler) HandleWorksheet(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/worksheets/")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	switch {
	case len(parts) == 2 && parts[1] == "applicants":
		h.handleListApplicants(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "top":
		h.handleTop(w, r, parts[0])
	case len(parts) == 4 && parts[1] == "applicants" && parts[3] == "ratings":
		h.handleSaveRatings(w, r, parts[0], parts[2])
	case len(parts) == 4 && parts[1] == "applicants" && parts[3] == "move":
		h.handleMove(w, r, parts[0], parts[2])
	default:
		writeError(w, http.StatusNotFound, "not_found", ErrBadRoute)
	}
}

func (h *WorksheetsHandler) handleListApplicants(w http.ResponseWriter, r *http.Request, worksheet string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	applicants, err := h.deps.Applicants(r.Context(), worksheet)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]applicantResponse, 0, len(applicants))
	for _, a := range applicants {
		out = append(out, toApplicantResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *WorksheetsHandler) handleSaveRatings(w http.ResponseWriter, r *http.Request, worksheet, name string) {
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}
	var req ratingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := h.deps.SaveRatings(r.Context(), worksheet, name, req.toModel()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (h *WorksheetsHandler) handleMove(w http.ResponseWriter, r *http.Request, worksheet, name string) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.To) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if err := h.deps.Move(r.Context(), worksheet, req.To, name); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "moved",
		"name":   name,
		"from":   worksheet,
		"to":     req.To,
	})
}

func (h *WorksheetsHandler) handleTop(w http.ResponseWriter, r *http.Request, worksheet string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n := h.deps.TopNDefault()
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		n = parsed
	}
	if max := h.deps.MaxTopLimit(); n > max {
		writeError(w, http.StatusBadRequest, "limit_exceeded", ErrBadRequest)
		return
	}
	entries, err := h.deps.TopN(r.Context(), worksheet, n)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// RefreshHandler handles cache refresh requests.
type RefreshHandler struct {
	deps Dependencies
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps Dependencies) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

// HandleRefresh handles POST /refresh requests. Cached snapshots are
// dropped; the next read per worksheet refetches from the backend.
func (h *RefreshHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	h.deps.Refresh(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "refreshed",
		"refreshedAt": time.Now().UTC().Format(time.RFC3339),
	})
}
