package demoserver_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/raysh454/mycv/internal/demoserver"
	"github.com/raysh454/mycv/internal/testutil"
)

const jobPosting = `Senior Go Developer at Acme Cloud
We are looking for an engineer with strong Go, PostgreSQL and Docker experience
to build reliable backend services. You will own services end to end.
Nice to have: Kubernetes and Terraform.`

func newTestServer(t *testing.T) *demoserver.Server {
	t.Helper()
	cfg := demoserver.DefaultConfig()
	cfg.Logger = &testutil.DummyLogger{}
	s, err := demoserver.NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func doJSON(t *testing.T, s http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode JSON response: %v (body: %s)", err, rec.Body.String())
	}
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	decodeJSON(t, rec, &body)
	return body.Detail
}

// ─── CORS / transport ─────────────────────────────────────────────────

func TestServer_CORS_HeaderPresent(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/api/skills", "")
	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("expected CORS origin *, got %q", origin)
	}
}

func TestServer_Preflight(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "OPTIONS", "/api/work-experiences/1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), "DELETE") {
		t.Errorf("unexpected allow methods: %q", rec.Header().Get("Access-Control-Allow-Methods"))
	}
}

func TestServer_RequestIDEchoedOrAssigned(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/skills", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}

	rec = doJSON(t, s, "GET", "/api/skills", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected a generated X-Request-ID")
	}
}

func TestServer_UnknownRouteUsesDetail(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/api/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if d := detail(t, rec); d != "Not Found" {
		t.Errorf("detail = %q", d)
	}
}

// ─── Personal info and photos ─────────────────────────────────────────

func TestServer_PersonalInfoNullUntilCreated(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/api/personal-info", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "null" {
		t.Fatalf("expected 200 null, got %d %q", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, "PUT", "/api/personal-info", `{"full_name":"Ada","email":"ada@example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got map[string]any
	decodeJSON(t, rec, &got)
	if got["id"] != float64(1) || got["full_name"] != "Ada" {
		t.Errorf("unexpected personal info: %v", got)
	}
}

func TestServer_PersonalInfoValidation(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "PUT", "/api/personal-info", `{"full_name":"","email":"nope"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var body struct {
		Detail []struct {
			Loc []string `json:"loc"`
			Msg string   `json:"msg"`
		} `json:"detail"`
	}
	decodeJSON(t, rec, &body)
	if len(body.Detail) != 2 {
		t.Fatalf("expected 2 validation errors, got %+v", body.Detail)
	}
	if body.Detail[1].Loc[1] != "email" || body.Detail[1].Msg != "Invalid email address" {
		t.Errorf("unexpected email error: %+v", body.Detail[1])
	}
}

func TestServer_PhotoLifecycle(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	photo := `{"image_data":"data:image/png;base64,iVBORw0KGgo="}`

	rec := doJSON(t, s, "PUT", "/api/photos", photo)
	if rec.Code != http.StatusBadRequest || detail(t, rec) != "Personal info must be created first" {
		t.Fatalf("upload without user: %d %s", rec.Code, rec.Body.String())
	}

	doJSON(t, s, "PUT", "/api/personal-info", `{"full_name":"Ada","email":"ada@example.com"}`)
	if rec = doJSON(t, s, "PUT", "/api/photos", photo); rec.Code != http.StatusOK {
		t.Fatalf("upload: %d %s", rec.Code, rec.Body.String())
	}
	if rec = doJSON(t, s, "PUT", "/api/photos", `{"image_data":"data:image/gif;base64,R0lG"}`); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("gif upload should be rejected, got %d", rec.Code)
	}
	if rec = doJSON(t, s, "DELETE", "/api/photos", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", rec.Code)
	}
	rec = doJSON(t, s, "DELETE", "/api/photos", "")
	if rec.Code != http.StatusNotFound || detail(t, rec) != "Photo not found" {
		t.Fatalf("second delete: %d %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, s, "GET", "/api/photos", "")
	if strings.TrimSpace(rec.Body.String()) != "null" {
		t.Fatalf("expected null photo, got %s", rec.Body.String())
	}
}

// ─── Profile sections ─────────────────────────────────────────────────

func TestServer_WorkExperienceCRUD(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/work-experiences", `{"company":"Acme","title":"Dev","start_date":"2020-13"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad month should be rejected, got %d", rec.Code)
	}

	rec = doJSON(t, s, "POST", "/api/work-experiences", `{"company":"Acme","title":"Dev","start_date":"2020-01"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID int `json:"id"`
	}
	decodeJSON(t, rec, &created)

	rec = doJSON(t, s, "PUT", "/api/work-experiences/999", `{"company":"Acme","title":"Dev","start_date":"2020-01"}`)
	if rec.Code != http.StatusNotFound || detail(t, rec) != "Work experience not found" {
		t.Fatalf("update missing: %d %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, "DELETE", "/api/work-experiences/"+itoa(created.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: %d", rec.Code)
	}
	var del map[string]int
	decodeJSON(t, rec, &del)
	if del["deleted"] != created.ID {
		t.Errorf("deleted = %v", del)
	}

	rec = doJSON(t, s, "DELETE", "/api/work-experiences/abc", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("non-numeric id should be 422, got %d", rec.Code)
	}
}

func TestServer_SkillsAcceptListOrCommaString(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/skills", `{"names":["Go","SQL"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("list form: %d %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, s, "POST", "/api/skills", `{"names":"Docker, Go , "}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("string form: %d %s", rec.Code, rec.Body.String())
	}
	var added []map[string]any
	decodeJSON(t, rec, &added)
	if len(added) != 2 || added[0]["name"] != "Docker" {
		t.Fatalf("unexpected skills: %v", added)
	}

	rec = doJSON(t, s, "GET", "/api/skills", "")
	var all []map[string]any
	decodeJSON(t, rec, &all)
	if len(all) != 3 {
		t.Fatalf("expected 3 skills, got %v", all)
	}
}

func TestServer_LanguageLevelValidated(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/languages", `{"name":"French","level":"D1"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	rec = doJSON(t, s, "POST", "/api/languages", `{"name":"French","level":"B2"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

// ─── Job descriptions ─────────────────────────────────────────────────

func TestServer_JobDescriptionMinimumLength(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/job-descriptions", `{"raw_text":"too short"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	body, _ := json.Marshal(map[string]string{"raw_text": jobPosting})
	rec = doJSON(t, s, "POST", "/api/job-descriptions", string(body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var jd map[string]any
	decodeJSON(t, rec, &jd)
	if jd["title"] != "Untitled Job" {
		t.Errorf("title = %v", jd["title"])
	}
}

func TestServer_RestoreMissingVersion(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	body, _ := json.Marshal(map[string]string{"raw_text": jobPosting})
	rec := doJSON(t, s, "POST", "/api/job-descriptions", string(body))
	var jd struct {
		ID int `json:"id"`
	}
	decodeJSON(t, rec, &jd)

	rec = doJSON(t, s, "POST", "/api/job-descriptions/"+itoa(jd.ID)+"/versions/42/restore", "")
	if rec.Code != http.StatusNotFound || detail(t, rec) != "Version not found" {
		t.Fatalf("restore: %d %s", rec.Code, rec.Body.String())
	}
}

// ─── Resumes ──────────────────────────────────────────────────────────

func TestServer_GenerateNeedsWorkExperience(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	body, _ := json.Marshal(map[string]string{"job_description": jobPosting, "language": "en"})
	rec := doJSON(t, s, "POST", "/api/resumes/generate", string(body))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if d := detail(t, rec); !strings.Contains(d, "work experience") {
		t.Errorf("detail = %q", d)
	}
}

func TestServer_GenerateValidatesLanguage(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	body, _ := json.Marshal(map[string]string{"job_description": jobPosting, "language": "de"})
	rec := doJSON(t, s, "POST", "/api/resumes/generate", string(body))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestServer_PDFInvalidTemplateAndMissingResume(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	if rec := doJSON(t, s, "GET", "/api/resumes/1/pdf?template=invalid", ""); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid template: expected 422, got %d", rec.Code)
	}
	rec := doJSON(t, s, "GET", "/api/resumes/9999/pdf", "")
	if rec.Code != http.StatusNotFound || detail(t, rec) != "Resume not found" {
		t.Fatalf("missing resume: %d %s", rec.Code, rec.Body.String())
	}
}

func itoa(i int) string { return strconv.Itoa(i) }

func TestNullLists_Rejected(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "PUT", "/api/profile/import",
		`{"personal_info":{"full_name":"Ada","email":"ada@example.com"},"work_experiences":null,"education":[],"skills":[],"projects":[],"languages":[]}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("import with null list: status %d, body %s", rec.Code, rec.Body.String())
	}
	var detail struct {
		Detail []struct {
			Loc  []string `json:"loc"`
			Type string   `json:"type"`
		} `json:"detail"`
	}
	decodeJSON(t, rec, &detail)
	if len(detail.Detail) != 1 || strings.Join(detail.Detail[0].Loc, ".") != "body.work_experiences" || detail.Detail[0].Type != "list_type" {
		t.Errorf("detail = %+v", detail.Detail)
	}

	rec = doJSON(t, s, "PUT", "/api/resumes/1", `{"resume":{"work_experiences":[],"skills":null,"education":[],"projects":[],"languages":null}}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("resume update with null lists: status %d, body %s", rec.Code, rec.Body.String())
	}
	decodeJSON(t, rec, &detail)
	if len(detail.Detail) != 2 || strings.Join(detail.Detail[0].Loc, ".") != "body.resume.skills" {
		t.Errorf("detail = %+v", detail.Detail)
	}

	rec = doJSON(t, s, "PUT", "/api/profile/import",
		`{"personal_info":{"full_name":"Ada","email":"ada@example.com"},"work_experiences":[],"education":[],"skills":[],"projects":[],"languages":[]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("import with empty lists: status %d, body %s", rec.Code, rec.Body.String())
	}
}
