package demoserver

import (
	"net/http"
	"strings"

	"github.com/raysh454/mycv/internal/logging"
	"github.com/raysh454/mycv/internal/model"
)

func (s *Server) handleListJobDescriptions(w http.ResponseWriter, r *http.Request) {
	listHandler(s, "listing job descriptions", s.store.ListJobDescriptions)(w, r)
}

func (s *Server) handleCreateJobDescription(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RawText string `json:"raw_text"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if errs := validateJobText("raw_text", body.RawText); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}
	jd, err := s.store.CreateJobDescription(r.Context(), strings.TrimSpace(body.RawText))
	if err != nil {
		s.storeFailed(w, "creating job description", err)
		return
	}
	s.logger.Info("created job description", logging.Field{Key: "id", Value: jd.ID})
	writeJSON(w, http.StatusCreated, jd)
}

func (s *Server) handleGetJobDescription(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	jd, err := s.store.GetJobDescription(r.Context(), id)
	if err != nil {
		s.storeFailed(w, "getting job description", err)
		return
	}
	writeJSON(w, http.StatusOK, jd)
}

func (s *Server) handleUpdateJobDescription(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var upd model.JobDescriptionUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	if errs := validateJobDescriptionUpdate(upd); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}
	if upd.RawText != nil {
		trimmed := strings.TrimSpace(*upd.RawText)
		upd.RawText = &trimmed
	}
	jd, err := s.store.UpdateJobDescription(r.Context(), id, upd)
	if err != nil {
		s.storeFailed(w, "updating job description", err)
		return
	}
	writeJSON(w, http.StatusOK, jd)
}

func (s *Server) handleDeleteJobDescription(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteJobDescription(r.Context(), id); err != nil {
		s.storeFailed(w, "deleting job description", err)
		return
	}
	s.logger.Info("deleted job description", logging.Field{Key: "id", Value: id})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleJobDescriptionResumes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	resumes, err := s.store.JobDescriptionResumes(r.Context(), id)
	if err != nil {
		s.storeFailed(w, "listing job description resumes", err)
		return
	}
	writeJSON(w, http.StatusOK, resumes)
}

func (s *Server) handleJobDescriptionVersions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	versions, err := s.store.JobDescriptionVersions(r.Context(), id)
	if err != nil {
		s.storeFailed(w, "listing job description versions", err)
		return
	}
	writeJSON(w, http.StatusOK, versions)
}

func (s *Server) handleRestoreVersion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	versionID, ok := pathID(w, r, "versionID")
	if !ok {
		return
	}
	jd, err := s.store.RestoreJobDescriptionVersion(r.Context(), id, versionID)
	if err != nil {
		s.storeFailed(w, "restoring job description version", err)
		return
	}
	s.logger.Info("restored job description version",
		logging.Field{Key: "id", Value: id},
		logging.Field{Key: "version_id", Value: versionID})
	writeJSON(w, http.StatusOK, jd)
}
