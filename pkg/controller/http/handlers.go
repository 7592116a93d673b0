package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/sustain-lab/esgradar/pkg/domain/interfaces"
	"github.com/sustain-lab/esgradar/pkg/domain/model"
	"github.com/sustain-lab/esgradar/pkg/usecase"
	"github.com/sustain-lab/esgradar/pkg/utils/async"
	"github.com/sustain-lab/esgradar/pkg/utils/errutil"
	"github.com/sustain-lab/esgradar/pkg/utils/safe"
)

func healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.uc.Assessment.GetConfig(r.Context(), chi.URLParam(r, "orgID"))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(w, r, http.StatusOK, cfg)
}

func (s *Server) putConfig(w http.ResponseWriter, r *http.Request) {
	var cfg model.RiskRadarConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid config body"), http.StatusBadRequest)
		return
	}

	saved, err := s.uc.Assessment.SaveConfig(r.Context(), chi.URLParam(r, "orgID"), &cfg)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(w, r, http.StatusOK, saved)
}

func (s *Server) getExposure(w http.ResponseWriter, r *http.Request) {
	output, err := s.uc.Assessment.Run(r.Context(), chi.URLParam(r, "orgID"), nil)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(w, r, http.StatusOK, output)
}

// postExposure runs an assessment with caller-supplied supply chain data
func (s *Server) postExposure(w http.ResponseWriter, r *http.Request) {
	var footprint model.SupplyChainFootprint
	if err := json.NewDecoder(r.Body).Decode(&footprint); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid footprint body"), http.StatusBadRequest)
		return
	}

	output, err := s.uc.Assessment.Run(r.Context(), chi.URLParam(r, "orgID"), &footprint)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(w, r, http.StatusOK, output)
}

func (s *Server) getRegulations(w http.ResponseWriter, r *http.Request) {
	regs, err := s.uc.Assessment.Regulations(r.Context(), chi.URLParam(r, "orgID"))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(w, r, http.StatusOK, regs)
}

func (s *Server) getReadiness(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.uc.Evidence.Readiness(r.Context(), chi.URLParam(r, "orgID"))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(w, r, http.StatusOK, snapshot)
}

func (s *Server) getGaps(w http.ResponseWriter, r *http.Request) {
	gaps, err := s.uc.Evidence.Gaps(r.Context(), chi.URLParam(r, "orgID"))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(w, r, http.StatusOK, gaps)
}

// postReview kicks off a full review cycle in the background: the snapshot
// refresh and notification fan-out can outlive the request.
func (s *Server) postReview(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	async.Dispatch(r.Context(), func(ctx context.Context) error {
		_, err := s.uc.Evidence.Review(ctx, orgID)
		return err
	})

	respondJSON(w, r, http.StatusAccepted, map[string]string{"status": "review started"})
}

func (s *Server) listEvidence(w http.ResponseWriter, r *http.Request) {
	inv, err := s.uc.Evidence.Inventory(r.Context(), chi.URLParam(r, "orgID"))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(w, r, http.StatusOK, inv)
}

func (s *Server) postEvidence(w http.ResponseWriter, r *http.Request) {
	var item model.EvidenceItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid evidence body"), http.StatusBadRequest)
		return
	}

	created, err := s.uc.Evidence.Record(r.Context(), chi.URLParam(r, "orgID"), &item)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, created)
}

func (s *Server) getEvidence(w http.ResponseWriter, r *http.Request) {
	item, err := s.uc.Evidence.Get(r.Context(), chi.URLParam(r, "orgID"), chi.URLParam(r, "itemID"))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(w, r, http.StatusOK, item)
}

func (s *Server) putEvidence(w http.ResponseWriter, r *http.Request) {
	var item model.EvidenceItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid evidence body"), http.StatusBadRequest)
		return
	}
	item.ID = chi.URLParam(r, "itemID")

	updated, err := s.uc.Evidence.Update(r.Context(), chi.URLParam(r, "orgID"), &item)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(w, r, http.StatusOK, updated)
}

func (s *Server) deleteEvidence(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Evidence.Delete(r.Context(), chi.URLParam(r, "orgID"), chi.URLParam(r, "itemID")); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleError maps domain errors to HTTP status codes
func handleError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, interfaces.ErrNotFound):
		errutil.HandleHTTP(ctx, w, err, http.StatusNotFound)
	case errors.Is(err, interfaces.ErrAlreadyExists):
		errutil.HandleHTTP(ctx, w, err, http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidConfig), errors.Is(err, usecase.ErrInvalidEvidence):
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
	default:
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
	}
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}
