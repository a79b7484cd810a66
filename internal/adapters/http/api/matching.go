package api

import (
	"net/http"
	"strings"

	"github.com/okian/buildermatch/pkg/logger"
)

// MatchingHandler serves ranking requests.
type MatchingHandler struct {
	deps Dependencies
}

// NewMatchingHandler creates a new matching handler.
func NewMatchingHandler(deps Dependencies) *MatchingHandler {
	return &MatchingHandler{deps: deps}
}

// HandleMatchProjects handles GET /matching/projects?user_id=&limit=.
func (h *MatchingHandler) HandleMatchProjects(w http.ResponseWriter, r *http.Request) {
	const op = "api.MatchProjects"
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, WrapKind(op, ErrBadRequest, errMissing("user_id")))
		return
	}
	list, err := h.deps.MatchProjects(r.Context(), userID, parseLimit(r))
	if err != nil {
		err = serviceError(op, err)
		h.logFailure(r, op, err)
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, list)
}

// HandleMatchMembers handles GET /matching/members/{projectId}?limit=.
func (h *MatchingHandler) HandleMatchMembers(w http.ResponseWriter, r *http.Request) {
	const op = "api.MatchMembers"
	projectID := strings.TrimSpace(r.PathValue("projectId"))
	if projectID == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, WrapKind(op, ErrBadRequest, errMissing("projectId")))
		return
	}
	list, err := h.deps.MatchMembers(r.Context(), projectID, parseLimit(r))
	if err != nil {
		err = serviceError(op, err)
		h.logFailure(r, op, err)
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, list)
}

func (h *MatchingHandler) logFailure(r *http.Request, op string, err error) {
	if isNotFound(err) {
		return
	}
	logger.Get().Named("api").Warn(r.Context(), "ranking failed",
		logger.String("op", op),
		logger.String("request_id", RequestID(r.Context())),
		logger.Error(err))
}
