package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"quizdesk-service/internal/app"
	"quizdesk-service/internal/auth"
	"quizdesk-service/internal/domain"
)

// APIHandler serves the non-websocket endpoints: login, the group catalog,
// and submission history.
type APIHandler struct {
	service *app.SessionService
	tokens  *auth.TokenService
}

func NewAPIHandler(service *app.SessionService, tokens *auth.TokenService) *APIHandler {
	return &APIHandler{service: service, tokens: tokens}
}

// Login exchanges credentials for a bearer token.
// Minimal credential check: user id doubles as the password; replace with a
// real user store behind the same endpoint shape.
func (h *APIHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		UserID   string `json:"userId"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.UserID != req.Password {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	tok, err := h.tokens.Issue(req.UserID, req.Name)
	if err != nil {
		http.Error(w, "issue token", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"accessToken": tok})
}

// Groups lists the question-group catalog for an authenticated user.
func (h *APIHandler) Groups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.Groups(r.Context(), bearerToken(r))
	if err != nil {
		writeError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(groups)
}

// History lists the caller's past submissions.
func (h *APIHandler) History(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.History(r.Context(), bearerToken(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []domain.HistoryRecord{}
	}
	_ = json.NewEncoder(w).Encode(records)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, domain.ErrGroupNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrStorageUnavailable):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
