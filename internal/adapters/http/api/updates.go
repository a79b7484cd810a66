package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/okian/buildermatch/internal/domain/model"
)

// maxBodyBytes caps update request bodies.
const maxBodyBytes = 1 << 20

func errMissing(field string) error {
	return fmt.Errorf("missing %s", field)
}

// skillRequest mirrors the OpenAPI Skill schema.
type skillRequest struct {
	Name     string `json:"name"`
	Level    string `json:"level"`
	Verified bool   `json:"verified"`
}

// userRequest mirrors the OpenAPI schema for POST /users.
type userRequest struct {
	UpdateID            string         `json:"updateId"`
	ID                  string         `json:"id"`
	Username            string         `json:"username"`
	DisplayName         string         `json:"displayName"`
	Avatar              string         `json:"avatar"`
	Skills              []skillRequest `json:"skills"`
	Goals               []string       `json:"goals"`
	ReputationScore     int            `json:"reputationScore"`
	TrustLevel          string         `json:"trustLevel"`
	LastActiveAt        string         `json:"lastActiveAt"`
	OnboardingCompleted bool           `json:"onboardingCompleted"`
}

func (u *userRequest) update() (model.Update, error) {
	if strings.TrimSpace(u.ID) == "" {
		return model.Update{}, errMissing("id")
	}
	var lastActive time.Time
	if s := strings.TrimSpace(u.LastActiveAt); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return model.Update{}, errors.New("invalid lastActiveAt; must be RFC3339")
		}
		lastActive = t
	}
	skills := make([]model.Skill, 0, len(u.Skills))
	for _, s := range u.Skills {
		skills = append(skills, model.Skill{Name: s.Name, Level: model.ParseSkillLevel(s.Level), Verified: s.Verified})
	}
	rec := &model.UserRecord{
		CandidateUser: model.CandidateUser{
			ID:                  strings.TrimSpace(u.ID),
			Skills:              skills,
			Goals:               u.Goals,
			ReputationScore:     u.ReputationScore,
			TrustLevel:          model.ParseTrustLevel(u.TrustLevel),
			LastActiveAt:        lastActive,
			OnboardingCompleted: u.OnboardingCompleted,
		},
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
	}
	return model.Update{ID: strings.TrimSpace(u.UpdateID), Kind: model.UpdateUser, User: rec}, nil
}

// projectRequest mirrors the OpenAPI schema for POST /projects.
type projectRequest struct {
	UpdateID      string   `json:"updateId"`
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	TechStack     []string `json:"techStack"`
	Status        string   `json:"status"`
	CreatorID     string   `json:"creatorId"`
	TeamMemberIDs []string `json:"teamMemberIds"`
}

func (p *projectRequest) update() (model.Update, error) {
	if strings.TrimSpace(p.ID) == "" {
		return model.Update{}, errMissing("id")
	}
	status := model.ParseProjectStatus(p.Status)
	if status == "" {
		status = model.StatusRecruiting
	}
	rec := &model.ProjectRecord{
		ID:            strings.TrimSpace(p.ID),
		Title:         p.Title,
		TechStack:     p.TechStack,
		Status:        status,
		CreatorID:     strings.TrimSpace(p.CreatorID),
		TeamMemberIDs: p.TeamMemberIDs,
	}
	return model.Update{ID: strings.TrimSpace(p.UpdateID), Kind: model.UpdateProject, Project: rec}, nil
}

// UpdatesHandler accepts user and project upserts.
type UpdatesHandler struct {
	deps Dependencies
}

// NewUpdatesHandler creates a new updates handler.
func NewUpdatesHandler(deps Dependencies) *UpdatesHandler {
	return &UpdatesHandler{deps: deps}
}

// HandlePostUser handles POST /users.
func (h *UpdatesHandler) HandlePostUser(w http.ResponseWriter, r *http.Request) {
	const op = "api.PostUser"
	var req userRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, WrapKind(op, ErrBadRequest, err))
		return
	}
	u, err := req.update()
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, WrapKind(op, ErrBadRequest, err))
		return
	}
	h.submit(w, r, op, u)
}

// HandlePostProject handles POST /projects.
func (h *UpdatesHandler) HandlePostProject(w http.ResponseWriter, r *http.Request) {
	const op = "api.PostProject"
	var req projectRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, WrapKind(op, ErrBadRequest, err))
		return
	}
	u, err := req.update()
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, WrapKind(op, ErrBadRequest, err))
		return
	}
	h.submit(w, r, op, u)
}

func (h *UpdatesHandler) submit(w http.ResponseWriter, r *http.Request, op string, u model.Update) { //nolint:gocritic // hugeParam: Update is passed by value
	id, duplicate, err := h.deps.SubmitUpdate(r.Context(), u)
	if err != nil {
		if errors.Is(err, model.ErrBackpressure) {
			w.Header().Set("Retry-After", "1")
		}
		writeServiceError(w, serviceError(op, err))
		return
	}
	if duplicate {
		writeData(w, http.StatusOK, ackResponse{Status: "duplicate", UpdateID: id, Duplicate: true})
		return
	}
	writeData(w, http.StatusAccepted, ackResponse{Status: "accepted", UpdateID: id})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}
