package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/takeline-lab/takeline/pkg/domain/types"
	"github.com/takeline-lab/takeline/pkg/parser"
	"github.com/takeline-lab/takeline/pkg/repository/firestore"
	"github.com/takeline-lab/takeline/pkg/repository/memory"
	"github.com/takeline-lab/takeline/pkg/usecase"
	"github.com/takeline-lab/takeline/pkg/utils/errutil"
	"github.com/takeline-lab/takeline/pkg/utils/safe"
)

type commandRequest struct {
	Text            string  `json:"text"`
	ProjectID       int64   `json:"project_id,omitempty"`
	SelectedItemIDs []int64 `json:"selected_item_ids,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

func notFoundStatus(err error) int {
	if errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid command request"), http.StatusBadRequest)
		return
	}

	outcome, err := s.uc.RunCommand(r.Context(), req.Text, usecase.ExecContext{
		ProjectID:       req.ProjectID,
		SelectedItemIDs: req.SelectedItemIDs,
		Source:          types.SourceAPI,
	})
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, outcome)
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid parse request"), http.StatusBadRequest)
		return
	}

	pctx := parser.Context{ProjectID: req.ProjectID}
	if req.ProjectID > 0 {
		if project, err := s.uc.Repository().Project().Get(r.Context(), req.ProjectID); err == nil {
			pctx.ProjectType = project.Type
		}
	}

	writeJSON(w, r, http.StatusOK, parser.Parse(req.Text, pctx))
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	logID := types.LogID(chi.URLParam(r, "logID"))
	if logID == "" {
		errutil.HandleHTTP(r.Context(), w, goerr.New("log ID is required"), http.StatusBadRequest)
		return
	}

	writeJSON(w, r, http.StatusOK, s.uc.Undo(r.Context(), logID))
}

func (s *Server) handleListLog(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.ParseInt(r.URL.Query().Get("project_id"), 10, 64)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "project_id query parameter is required"), http.StatusBadRequest)
		return
	}

	entries, err := s.uc.Repository().ActionLog().ListByProject(r.Context(), projectID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.uc.Repository().Project().List(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"projects": projects})
}

func projectIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "projectID"), 10, 64)
	if err != nil {
		return 0, goerr.Wrap(err, "invalid project ID")
	}
	return id, nil
}

func (s *Server) handleListTakeoff(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectIDParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	if _, err := s.uc.Repository().Project().Get(r.Context(), projectID); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, notFoundStatus(err))
		return
	}

	items, err := s.uc.Repository().Takeoff().ListByProject(r.Context(), projectID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleListRFIs(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectIDParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	rfis, err := s.uc.Repository().RFI().ListByProject(r.Context(), projectID)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"rfis": rfis})
}

func (s *Server) handleApplyPricing(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectIDParam(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	region := r.URL.Query().Get("region")

	progress, err := s.uc.ApplyPricing(r.Context(), projectID, region)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, usecase.ErrPricingUnavailable) {
			status = http.StatusNotImplemented
		}
		errutil.HandleHTTP(r.Context(), w, err, status)
		return
	}

	writeJSON(w, r, http.StatusOK, progress)
}
