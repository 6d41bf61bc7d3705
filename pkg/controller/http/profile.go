package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

func profileID(r *http.Request) model.ProfileID {
	return model.ProfileID(chi.URLParam(r, "profileID"))
}

func (s *Server) listProfiles(w http.ResponseWriter, r *http.Request) {
	category := types.CategoryID(r.URL.Query().Get("category"))
	profiles, err := s.uc.Profile.ListProfiles(r.Context(), category)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"profiles": profiles})
}

func (s *Server) createProfile(w http.ResponseWriter, r *http.Request) {
	var profile model.RiskProfile
	if err := decodeJSON(r, &profile); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.uc.Profile.CreateProfile(r.Context(), &profile)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.uc.Profile.GetProfile(r.Context(), profileID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, profile)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var profile model.RiskProfile
	if err := decodeJSON(r, &profile); err != nil {
		writeError(w, r, err)
		return
	}
	// The path decides which profile is updated
	profile.ID = profileID(r)

	updated, err := s.uc.Profile.UpdateProfile(r.Context(), &profile)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, updated)
}

func (s *Server) deleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Profile.DeleteProfile(r.Context(), profileID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
