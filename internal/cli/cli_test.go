package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raysh454/mycv/internal/cli"
	"github.com/raysh454/mycv/internal/demoserver"
	"github.com/raysh454/mycv/internal/testutil"
)

const posting = `Senior Go Developer at Acme Cloud

We are looking for an engineer with strong Go, Docker and PostgreSQL experience to build our platform services.
Nice to have: Kubernetes and Terraform.`

type harness struct {
	t       *testing.T
	baseURL string
	dir     string
}

type result struct {
	stdout string
	stderr string
	code   int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := demoserver.DefaultConfig()
	cfg.Logger = &testutil.DummyLogger{}
	s, err := demoserver.NewServer(cfg)
	require.NoError(t, err)
	t.Cleanup(s.Close)

	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	return &harness{t: t, baseURL: srv.URL + "/api", dir: t.TempDir()}
}

func (h *harness) run(args ...string) result {
	return h.runWithInput("", args...)
}

func (h *harness) runWithInput(stdin string, args ...string) result {
	h.t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"--base-url", h.baseURL, "--log-level", "warn"}, args...)
	code := cli.Execute(context.Background(), full, cli.Options{
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
	})
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

// mustRun fails the test unless the command exits 0.
func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	res := h.run(args...)
	require.Equalf(h.t, 0, res.code, "mycv %v: %s", args, res.stderr)
	return res.stdout
}

func (h *harness) writeFile(name, content string) string {
	h.t.Helper()
	path := filepath.Join(h.dir, name)
	require.NoError(h.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func decode[T any](t *testing.T, s string) T {
	t.Helper()
	var out T
	require.NoErrorf(t, json.Unmarshal([]byte(s), &out), "output: %s", s)
	return out
}

type idOnly struct {
	ID int `json:"id"`
}

func (h *harness) seedProfile() {
	h.t.Helper()
	h.mustRun("personal", "set", "-f", h.writeFile("me.yaml", "full_name: Ada Lovelace\nemail: ada@example.com\n"))
	h.mustRun("experiences", "create", "-f", h.writeFile("work.json",
		`{"company":"Acme","title":"Go Developer","start_date":"2020-01","is_current":true,"description":"Built Go services with Docker"}`))
}

func TestExecute_PersonalInfo(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	assert.Equal(t, "null", strings.TrimSpace(h.mustRun("personal", "get")))

	out := h.mustRun("personal", "set", "-f", h.writeFile("me.yaml", "full_name: Ada Lovelace\nemail: ada@example.com\nphone: \"+32 470 00 00 00\"\n"))
	info := decode[map[string]any](t, out)
	assert.Equal(t, "Ada Lovelace", info["full_name"])
	assert.Equal(t, "+32 470 00 00 00", info["phone"])

	info = decode[map[string]any](t, h.mustRun("personal", "get"))
	assert.Equal(t, "ada@example.com", info["email"])
}

func TestExecute_ReportsServerDetail(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	res := h.run("personal", "set", "-f", h.writeFile("bad.json", `{"full_name":"Ada","email":"nope"}`))
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Error: Invalid email address")
	assert.Empty(t, res.stdout)

	res = h.run("experiences", "delete", "99")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Error: Work experience not found")
}

func TestExecute_ArgumentErrors(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	res := h.run("experiences", "delete", "abc")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, `invalid id "abc"`)

	res = h.run("jd", "restore", "1")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "expects a job description id and a version id")

	res = h.run("--output", "xml", "skills", "list")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "unknown output format")
}

func TestExecute_NetworkFailureExitCode(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(nil)
	url := srv.URL + "/api"
	srv.Close()

	var stderr bytes.Buffer
	code := cli.Execute(context.Background(), []string{"--base-url", url, "skills", "list"}, cli.Options{
		Stdout: &bytes.Buffer{},
		Stderr: &stderr,
	})
	assert.Equal(t, 3, code)
	assert.Contains(t, stderr.String(), "Error: Request failed")
}

func TestExecute_SectionsAndReorder(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.seedProfile()

	works := decode[[]map[string]any](t, h.mustRun("experiences", "list"))
	require.Len(t, works, 1)
	assert.Equal(t, "Acme", works[0]["company"])

	id := strconv.Itoa(int(works[0]["id"].(float64)))
	updated := decode[map[string]any](t, h.mustRun("experiences", "update", id, "-f",
		h.writeFile("work2.yaml", "company: Acme\ntitle: Lead\nstart_date: \"2020-01\"\n")))
	assert.Equal(t, "Lead", updated["title"])

	fr := decode[idOnly](t, h.mustRun("languages", "create", "-f", h.writeFile("fr.json", `{"name":"French","level":"B2"}`)))
	nl := decode[idOnly](t, h.mustRun("languages", "create", "-f", h.writeFile("nl.json", `{"name":"Dutch","level":"C1"}`)))

	langs := decode[[]map[string]any](t, h.mustRun("languages", "reorder", strconv.Itoa(nl.ID), strconv.Itoa(fr.ID)))
	require.Len(t, langs, 2)
	assert.Equal(t, "Dutch", langs[0]["name"])
	assert.Equal(t, "French", langs[1]["name"])

	del := decode[map[string]int](t, h.mustRun("languages", "delete", strconv.Itoa(fr.ID)))
	assert.Equal(t, fr.ID, del["deleted"])
}

func TestExecute_SkillsTable(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	skills := decode[[]map[string]any](t, h.mustRun("skills", "add", "Go", "Docker"))
	require.Len(t, skills, 2)

	out := h.mustRun("-o", "table", "skills", "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"ID", "NAME"}, strings.Fields(lines[0]))
	assert.Contains(t, out, "Docker")
}

func TestExecute_ProfileExportImport(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.seedProfile()
	h.mustRun("skills", "add", "Go")

	path := filepath.Join(h.dir, "profile.yaml")
	res := h.run("profile", "export", "-f", path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Exported profile to")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "full_name: Ada Lovelace")

	imported := decode[map[string]any](t, h.mustRun("profile", "import", "-f", path))
	assert.Equal(t, "Profile imported successfully", imported["message"])

	profile := decode[map[string]any](t, h.mustRun("profile", "complete"))
	works, _ := profile["work_experiences"].([]any)
	assert.Len(t, works, 1)
}

func TestExecute_GenerateAndDownloadPDF(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.seedProfile()

	res := h.runWithInput(posting, "resumes", "generate", "-f", "-", "--lang", "fr")
	require.Equal(t, 0, res.code, res.stderr)
	generated := decode[map[string]any](t, res.stdout)
	assert.Equal(t, "Senior Go Developer", generated["job_title"])
	assert.Equal(t, "fr", generated["language"])
	id := strconv.Itoa(int(generated["id"].(float64)))

	list := decode[[]idOnly](t, h.mustRun("resumes", "list"))
	require.Len(t, list, 1)

	outDir := filepath.Join(h.dir, "pdfs")
	saved := decode[map[string]any](t, h.mustRun("resumes", "pdf", id, "--dir", outDir, "--template", "modern"))
	location, _ := saved["location"].(string)
	assert.Equal(t, filepath.Join(outDir, "Ada_Lovelace_Resume_Acme_Cloud.pdf"), location)

	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.EqualValues(t, len(data), saved["size"])

	res = h.run("resumes", "pdf", id, "--template", "fancy", "--dir", outDir)
	assert.Equal(t, 1, res.code)

	h.mustRun("resumes", "delete", id)
	res = h.run("resumes", "get", id)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Error: Resume not found")
}

func TestExecute_JobDescriptionDiff(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	res := h.runWithInput(posting, "jd", "create", "-f", "-")
	require.Equal(t, 0, res.code, res.stderr)
	jd := decode[idOnly](t, res.stdout)
	id := strconv.Itoa(jd.ID)

	body, err := json.Marshal(map[string]string{"raw_text": "Remote friendly.\n" + posting})
	require.NoError(t, err)
	h.mustRun("jd", "update", id, "-f", h.writeFile("update.json", string(body)))

	versions := decode[[]map[string]any](t, h.mustRun("jd", "versions", id))
	require.Len(t, versions, 1)

	diff := decode[map[string]any](t, h.mustRun("jd", "diff", id, "1"))
	assert.EqualValues(t, 1, diff["lines_added"])
	assert.EqualValues(t, 0, diff["lines_removed"])

	text := h.mustRun("-o", "table", "jd", "diff", id, "1")
	assert.Contains(t, text, "+ Remote friendly.")
	assert.Contains(t, text, "1 added, 0 removed")

	res = h.run("jd", "diff", id, "1", "7")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "version not found")
}

func TestExecute_ProbeMonth(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	out := decode[map[string]any](t, h.mustRun("probe", "month", "03/2024"))
	assert.Equal(t, false, out["month_input"])
	assert.Equal(t, "2024-03", out["value"])

	res := h.run("probe", "month", "2024-13")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "invalid month")
}

func TestExecute_DumpsMetrics(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	res := h.run("--metrics", "skills", "list")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stderr, "mycv_client_requests_total")
}

func TestExecute_DumpsMetricsWhenCommandFails(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	res := h.run("--metrics", "experiences", "delete", "99")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Error: Work experience not found")
	assert.Contains(t, res.stderr, "mycv_client_request_failures_total")
	assert.Contains(t, res.stderr, "mycv_client_requests_total")
}
