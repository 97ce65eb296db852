package demoserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/raysh454/mycv/internal/logging"
	"github.com/raysh454/mycv/internal/model"
)

// Profile sections share one create/update/delete shape.

func listHandler[Out any](s *Server, op string, list func(context.Context) ([]Out, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := list(r.Context())
		if err != nil {
			s.storeFailed(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func createHandler[In, Out any](s *Server, op string, validate func(In) []fieldError, create func(context.Context, In) (Out, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in In
		if !decodeBody(w, r, &in) {
			return
		}
		if errs := validate(in); len(errs) > 0 {
			writeValidation(w, errs)
			return
		}
		out, err := create(r.Context(), in)
		if err != nil {
			s.storeFailed(w, op, err)
			return
		}
		s.logger.Debug(op)
		writeJSON(w, http.StatusOK, out)
	}
}

func updateHandler[In, Out any](s *Server, op string, validate func(In) []fieldError, update func(context.Context, int, In) (Out, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}
		var in In
		if !decodeBody(w, r, &in) {
			return
		}
		if errs := validate(in); len(errs) > 0 {
			writeValidation(w, errs)
			return
		}
		out, err := update(r.Context(), id, in)
		if err != nil {
			s.storeFailed(w, op, err)
			return
		}
		s.logger.Debug(op, logging.Field{Key: "id", Value: id})
		writeJSON(w, http.StatusOK, out)
	}
}

func deleteHandler(s *Server, op string, del func(context.Context, int) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}
		if err := del(r.Context(), id); err != nil {
			s.storeFailed(w, op, err)
			return
		}
		s.logger.Debug(op, logging.Field{Key: "id", Value: id})
		deleted(w, id)
	}
}

// Personal info

func (s *Server) handleGetPersonalInfo(w http.ResponseWriter, r *http.Request) {
	u, err := s.store.GetUser(r.Context())
	if err != nil {
		s.storeFailed(w, "getting personal info", err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleUpdatePersonalInfo(w http.ResponseWriter, r *http.Request) {
	createHandler(s, "updating personal info", validatePersonalInfo, s.store.UpsertUser)(w, r)
}

// Work experiences

func (s *Server) handleListWorkExperiences(w http.ResponseWriter, r *http.Request) {
	listHandler(s, "listing work experiences", s.store.ListWorkExperiences)(w, r)
}

func (s *Server) handleCreateWorkExperience(w http.ResponseWriter, r *http.Request) {
	createHandler(s, "creating work experience", validateWorkExperience, s.store.CreateWorkExperience)(w, r)
}

func (s *Server) handleUpdateWorkExperience(w http.ResponseWriter, r *http.Request) {
	updateHandler(s, "updating work experience", validateWorkExperience, s.store.UpdateWorkExperience)(w, r)
}

func (s *Server) handleDeleteWorkExperience(w http.ResponseWriter, r *http.Request) {
	deleteHandler(s, "deleting work experience", s.store.DeleteWorkExperience)(w, r)
}

// Education

func (s *Server) handleListEducation(w http.ResponseWriter, r *http.Request) {
	listHandler(s, "listing education", s.store.ListEducation)(w, r)
}

func (s *Server) handleCreateEducation(w http.ResponseWriter, r *http.Request) {
	createHandler(s, "creating education", validateEducation, s.store.CreateEducation)(w, r)
}

func (s *Server) handleUpdateEducation(w http.ResponseWriter, r *http.Request) {
	updateHandler(s, "updating education", validateEducation, s.store.UpdateEducation)(w, r)
}

func (s *Server) handleDeleteEducation(w http.ResponseWriter, r *http.Request) {
	deleteHandler(s, "deleting education", s.store.DeleteEducation)(w, r)
}

// Skills

func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	listHandler(s, "listing skills", s.store.ListSkills)(w, r)
}

// handleCreateSkills accepts names as a JSON list or as one comma-separated
// string.
func (s *Server) handleCreateSkills(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Names json.RawMessage `json:"names"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	var names []string
	if err := json.Unmarshal(body.Names, &names); err != nil {
		var joined string
		if err := json.Unmarshal(body.Names, &joined); err != nil {
			writeValidation(w, []fieldError{bodyError("names", "Input should be a list of names or a comma-separated string")})
			return
		}
		names = strings.Split(joined, ",")
	}

	skills, err := s.store.AddSkills(r.Context(), names)
	if err != nil {
		s.storeFailed(w, "creating skills", err)
		return
	}
	s.logger.Debug("created skills", logging.Field{Key: "count", Value: len(skills)})
	writeJSON(w, http.StatusOK, skills)
}

func (s *Server) handleDeleteSkill(w http.ResponseWriter, r *http.Request) {
	deleteHandler(s, "deleting skill", s.store.DeleteSkill)(w, r)
}

// Projects

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	listHandler(s, "listing projects", s.store.ListProjects)(w, r)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	createHandler(s, "creating project", validateProject, s.store.CreateProject)(w, r)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	updateHandler(s, "updating project", validateProject, s.store.UpdateProject)(w, r)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	deleteHandler(s, "deleting project", s.store.DeleteProject)(w, r)
}

// Languages

func (s *Server) handleListLanguages(w http.ResponseWriter, r *http.Request) {
	listHandler(s, "listing languages", s.store.ListLanguages)(w, r)
}

func (s *Server) handleCreateLanguage(w http.ResponseWriter, r *http.Request) {
	createHandler(s, "creating language", validateLanguage, s.store.CreateLanguage)(w, r)
}

func (s *Server) handleUpdateLanguage(w http.ResponseWriter, r *http.Request) {
	updateHandler(s, "updating language", validateLanguage, s.store.UpdateLanguage)(w, r)
}

func (s *Server) handleDeleteLanguage(w http.ResponseWriter, r *http.Request) {
	deleteHandler(s, "deleting language", s.store.DeleteLanguage)(w, r)
}

func (s *Server) handleReorderLanguages(w http.ResponseWriter, r *http.Request) {
	var items []model.ReorderItem
	if !decodeBody(w, r, &items) {
		return
	}
	langs, err := s.store.ReorderLanguages(r.Context(), items)
	if err != nil {
		s.storeFailed(w, "reordering languages", err)
		return
	}
	writeJSON(w, http.StatusOK, langs)
}

// Photos

func (s *Server) handleGetPhoto(w http.ResponseWriter, r *http.Request) {
	photo, err := s.store.GetPhoto(r.Context())
	if err != nil {
		s.storeFailed(w, "getting photo", err)
		return
	}
	if photo == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, model.Photo{ImageData: photo})
}

func (s *Server) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	var in model.Photo
	if !decodeBody(w, r, &in) {
		return
	}
	if errs := validatePhoto(in.ImageData); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}
	if err := s.store.SetPhoto(r.Context(), in.ImageData); err != nil {
		s.storeFailed(w, "uploading photo", err)
		return
	}
	s.logger.Info("photo uploaded", logging.Field{Key: "bytes", Value: len(in.ImageData)})
	writeJSON(w, http.StatusOK, in)
}

func (s *Server) handleDeletePhoto(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeletePhoto(r.Context()); err != nil {
		s.storeFailed(w, "deleting photo", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Complete profile

func (s *Server) handleCompleteProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.CompleteProfile(r.Context())
	if err != nil {
		s.storeFailed(w, "getting complete profile", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleImportProfile(w http.ResponseWriter, r *http.Request) {
	var in model.ProfileImport
	if !decodeBodyLists(w, r, &in, nil, "work_experiences", "education", "skills", "projects", "languages") {
		return
	}
	if errs := validateProfileImport(in); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}
	res, err := s.store.ImportProfile(r.Context(), in)
	if err != nil {
		s.logger.Error("importing profile", logging.Field{Key: "error", Value: err})
		writeDetail(w, http.StatusInternalServerError, "Import failed. Please try again.")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
