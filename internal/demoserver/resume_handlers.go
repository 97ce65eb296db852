package demoserver

import (
	"net/http"
	"strings"

	"github.com/raysh454/mycv/internal/logging"
	"github.com/raysh454/mycv/internal/model"
	"github.com/raysh454/mycv/internal/store"
)

func (s *Server) handleGenerateResume(w http.ResponseWriter, r *http.Request) {
	req := model.GenerateResumeRequest{Language: "en"}
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := validateGenerate(req); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}
	jobText := strings.TrimSpace(req.JobDescription)

	profile, err := loadProfile(r.Context(), s.store)
	if err != nil {
		s.storeFailed(w, "loading profile", err)
		return
	}
	if len(profile.work) == 0 {
		writeDetail(w, http.StatusBadRequest, noWorkExperience)
		return
	}

	t := tailor(jobText, profile)
	resume, err := s.store.SaveResume(r.Context(), store.NewResume{
		JobDescriptionID: req.JobDescriptionID,
		RawText:          jobText,
		JobTitle:         t.jobTitle,
		CompanyName:      t.company,
		MatchScore:       t.score,
		Analysis:         &t.analysis,
		Content:          t.content,
		Language:         req.Language,
	})
	if err != nil {
		s.storeFailed(w, "saving resume", err)
		return
	}
	s.logger.Info("generated resume",
		logging.Field{Key: "id", Value: resume.ID},
		logging.Field{Key: "job_title", Value: t.jobTitle},
		logging.Field{Key: "match_score", Value: t.score})
	writeJSON(w, http.StatusOK, resume)
}

func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	listHandler(s, "listing resumes", s.store.ListResumes)(w, r)
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	resume, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.storeFailed(w, "getting resume", err)
		return
	}
	writeJSON(w, http.StatusOK, resume)
}

func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var body model.ResumeUpdate
	if !decodeBodyLists(w, r, &body, []string{"resume"}, "work_experiences", "skills", "education", "projects", "languages") {
		return
	}
	resume, err := s.store.UpdateResumeContent(r.Context(), id, body.Resume)
	if err != nil {
		s.storeFailed(w, "updating resume", err)
		return
	}
	writeJSON(w, http.StatusOK, resume)
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.store.DeleteResume(r.Context(), id); err != nil {
		s.storeFailed(w, "deleting resume", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleResumePDF renders the resume in the requested template. The
// language query parameter overrides the language it was generated in.
func (s *Server) handleResumePDF(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	q := r.URL.Query()
	tmpl := q.Get("template")
	if tmpl == "" {
		tmpl = defaultTemplate
	}
	if errs := validateTemplate(tmpl); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	resume, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.storeFailed(w, "getting resume", err)
		return
	}
	if lang := q.Get("language"); lang != "" {
		resume.Language = lang
	}

	var fullName string
	if resume.Resume != nil {
		fullName = stringField(resume.Resume.PersonalInfo, "full_name")
	}
	pdf, err := s.renderer.Render(r.Context(), newDocument(resume, tmpl))
	if err != nil {
		s.logger.Error("rendering pdf", logging.Field{Key: "id", Value: id}, logging.Field{Key: "error", Value: err})
		writeDetail(w, http.StatusInternalServerError, "PDF generation failed")
		return
	}

	filename := pdfFilename(fullName, resume.CompanyName)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
	s.logger.Info("served pdf",
		logging.Field{Key: "id", Value: id},
		logging.Field{Key: "template", Value: tmpl},
		logging.Field{Key: "bytes", Value: len(pdf)})
}
