package demoserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/raysh454/mycv/internal/logging"
	"github.com/raysh454/mycv/internal/store"
)

// fieldError is one entry of a 422 validation detail list.
type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func bodyError(field, msg string) fieldError {
	return fieldError{Loc: []string{"body", field}, Msg: msg, Type: "value_error"}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail sends {"detail": msg}, the error shape clients read.
func writeDetail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

func writeValidation(w http.ResponseWriter, errs []fieldError) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string][]fieldError{"detail": errs})
}

// decodeBody writes a 422 and returns false when the body is not valid JSON
// for v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeValidation(w, []fieldError{{Loc: []string{"body"}, Msg: "Invalid JSON body", Type: "json_invalid"}})
		return false
	}
	return true
}

// decodeBodyLists is decodeBody for bodies carrying list sections. Under the
// object at path, each named list may be absent or an array but never null.
func decodeBodyLists(w http.ResponseWriter, r *http.Request, v any, path []string, lists ...string) bool {
	data, err := io.ReadAll(r.Body)
	if err != nil || json.Unmarshal(data, v) != nil {
		writeValidation(w, []fieldError{{Loc: []string{"body"}, Msg: "Invalid JSON body", Type: "json_invalid"}})
		return false
	}

	obj := map[string]json.RawMessage{}
	_ = json.Unmarshal(data, &obj)
	for _, key := range path {
		inner := map[string]json.RawMessage{}
		_ = json.Unmarshal(obj[key], &inner)
		obj = inner
	}

	var errs []fieldError
	for _, name := range lists {
		if raw, ok := obj[name]; ok && string(raw) == "null" {
			loc := append(append([]string{"body"}, path...), name)
			errs = append(errs, fieldError{Loc: loc, Msg: "Input should be a valid list", Type: "list_type"})
		}
	}
	if len(errs) > 0 {
		writeValidation(w, errs)
		return false
	}
	return true
}

// pathID parses a numeric URL parameter, writing a 422 when it is not one.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		writeValidation(w, []fieldError{{
			Loc:  []string{"path", name},
			Msg:  "Input should be a valid integer",
			Type: "int_parsing",
		}})
		return 0, false
	}
	return id, true
}

// storeFailed maps a store error to its HTTP status.
func (s *Server) storeFailed(w http.ResponseWriter, op string, err error) {
	var nf *store.NotFoundError
	switch {
	case errors.As(err, &nf):
		writeDetail(w, http.StatusNotFound, nf.Error())
	case errors.Is(err, store.ErrNoUser):
		writeDetail(w, http.StatusBadRequest, "Personal info must be created first")
	default:
		s.logger.Warn(op, logging.Field{Key: "error", Value: err})
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}

func deleted(w http.ResponseWriter, id int) {
	writeJSON(w, http.StatusOK, map[string]int{"deleted": id})
}
