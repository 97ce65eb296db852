package demoserver_test

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raysh454/mycv/internal/api"
	"github.com/raysh454/mycv/internal/jdversions"
	"github.com/raysh454/mycv/internal/model"
	"github.com/raysh454/mycv/internal/testutil"
	"github.com/raysh454/mycv/internal/webclient"
)

// newRoundTrip serves a fresh demo server over HTTP and returns a real client
// pointed at it.
func newRoundTrip(t *testing.T, opts ...api.Option) *api.Client {
	t.Helper()
	s := newTestServer(t)
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)

	wc, err := webclient.NewNetHTTPClient(webclient.Config{}, nil, srv.Client())
	require.NoError(t, err)
	c, err := api.New(srv.URL+"/api", wc, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRoundTrip_ProfileSections(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newRoundTrip(t)

	info, err := c.GetPersonalInfo(ctx)
	require.NoError(t, err)
	assert.Nil(t, info)

	info, err = c.UpdatePersonalInfo(ctx, model.PersonalInfoInput{FullName: "Ada Lovelace", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, info.ID)

	// create → list → update → delete
	w, err := c.CreateWorkExperience(ctx, model.WorkExperienceInput{Company: "Acme", Title: "Dev", StartDate: "2020-01", IsCurrent: true})
	require.NoError(t, err)
	list, err := c.GetWorkExperiences(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	desc := "Built Go services"
	w, err = c.UpdateWorkExperience(ctx, w.ID, model.WorkExperienceInput{Company: "Acme", Title: "Lead", StartDate: "2020-01", Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Lead", w.Title)
	require.NotNil(t, w.Description)

	require.NoError(t, c.DeleteWorkExperience(ctx, w.ID))
	list, err = c.GetWorkExperiences(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = c.DeleteWorkExperience(ctx, w.ID)
	require.ErrorIs(t, err, api.ErrRequestFailed)
	assert.Equal(t, "Work experience not found", err.Error())
	reqErr, ok := api.AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, api.KindClient, reqErr.Kind)
	assert.Equal(t, 404, reqErr.StatusCode)

	year := 2012
	e, err := c.CreateEducation(ctx, model.EducationInput{Institution: "MIT", Degree: "BSc", GraduationYear: &year})
	require.NoError(t, err)
	require.NoError(t, c.DeleteEducation(ctx, e.ID))

	p, err := c.CreateProject(ctx, model.ProjectInput{Name: "mycv"})
	require.NoError(t, err)
	p, err = c.UpdateProject(ctx, p.ID, model.ProjectInput{Name: "mycv2"})
	require.NoError(t, err)
	assert.Equal(t, "mycv2", p.Name)
	projects, err := c.GetProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestRoundTrip_ValidationMessagesAreJoined(t *testing.T) {
	t.Parallel()
	c := newRoundTrip(t)

	_, err := c.UpdatePersonalInfo(context.Background(), model.PersonalInfoInput{FullName: "", Email: "nope"})
	require.ErrorIs(t, err, api.ErrRequestFailed)
	assert.Equal(t, "Field required; Invalid email address", err.Error())
}

func TestRoundTrip_SkillsAndLanguages(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newRoundTrip(t)

	skills, err := c.CreateSkills(ctx, []string{"Go", "Docker"})
	require.NoError(t, err)
	require.Len(t, skills, 2)
	require.NoError(t, c.DeleteSkill(ctx, skills[1].ID))
	skills, err = c.GetSkills(ctx)
	require.NoError(t, err)
	assert.Len(t, skills, 1)

	en, err := c.CreateLanguage(ctx, model.LanguageInput{Name: "English", Level: model.LevelC2})
	require.NoError(t, err)
	nl, err := c.CreateLanguage(ctx, model.LanguageInput{Name: "Dutch", Level: model.LevelB1})
	require.NoError(t, err)

	langs, err := c.ReorderLanguages(ctx, api.OrderFromIDs([]int{nl.ID, en.ID}))
	require.NoError(t, err)
	require.Len(t, langs, 2)
	assert.Equal(t, "Dutch", langs[0].Name)

	nl, err = c.UpdateLanguage(ctx, nl.ID, model.LanguageInput{Name: "Dutch", Level: model.LevelB2})
	require.NoError(t, err)
	assert.Equal(t, model.LevelB2, nl.Level)
	require.NoError(t, c.DeleteLanguage(ctx, en.ID))
}

func TestRoundTrip_Photo(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newRoundTrip(t)

	_, err := c.UpdatePersonalInfo(ctx, model.PersonalInfoInput{FullName: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	dataURL, err := api.PhotoDataURL("", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	require.NoError(t, err)
	_, err = c.UploadPhoto(ctx, dataURL)
	require.NoError(t, err)

	photo, err := c.GetPhoto(ctx)
	require.NoError(t, err)
	require.NotNil(t, photo)
	assert.Equal(t, dataURL, photo.ImageData)

	require.NoError(t, c.DeletePhoto(ctx))
	photo, err = c.GetPhoto(ctx)
	require.NoError(t, err)
	assert.Nil(t, photo)
}

func seedProfile(t *testing.T, c *api.Client) {
	t.Helper()
	ctx := context.Background()
	desc := "Built Go and PostgreSQL services"
	_, err := c.ImportProfile(ctx, model.ProfileImport{
		PersonalInfo:    model.PersonalInfoInput{FullName: "Ada Lovelace", Email: "ada@example.com"},
		WorkExperiences: []model.WorkExperienceInput{{Company: "Acme", Title: "Backend Engineer", StartDate: "2019-03", IsCurrent: true, Description: &desc}},
		Skills:          []model.SkillImport{{Name: "Go"}, {Name: "PostgreSQL"}, {Name: "Kubernetes"}},
		Languages:       []model.LanguageInput{{Name: "English", Level: model.LevelC2}},
	})
	require.NoError(t, err)
}

func TestRoundTrip_ImportAndCompleteProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newRoundTrip(t)
	seedProfile(t, c)

	p, err := c.GetCompleteProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", p.PersonalInfo["full_name"])
	assert.Len(t, p.WorkExperiences, 1)
	assert.Len(t, p.Skills, 3)
	assert.Len(t, p.Languages, 1)
}

func TestRoundTrip_GenerateAndDownload(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sink := &testutil.MemorySink{}
	c := newRoundTrip(t, api.WithDownloadSink(sink))
	seedProfile(t, c)

	r, err := c.GenerateResume(ctx, jobPosting, 0, "")
	require.NoError(t, err)
	require.NotNil(t, r.JobTitle)
	assert.Equal(t, "Senior Go Developer", *r.JobTitle)
	require.NotNil(t, r.CompanyName)
	assert.Equal(t, "Acme Cloud", *r.CompanyName)
	require.NotNil(t, r.MatchScore)
	// Go and PostgreSQL matched, Docker missing
	assert.InDelta(t, 66.7, *r.MatchScore, 0.01)
	require.NotNil(t, r.JobAnalysis)
	assert.Contains(t, r.JobAnalysis.PreferredSkills, model.SkillMatch{Name: "Kubernetes", Matched: true})
	require.NotNil(t, r.Resume)
	require.Len(t, r.Resume.WorkExperiences, 1)
	assert.ElementsMatch(t, []string{"Go", "PostgreSQL"}, r.Resume.WorkExperiences[0].MatchReasons)

	history, err := c.GetResumes(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)

	name, err := c.DownloadResumePDF(ctx, r.ID, "modern", "fr")
	require.NoError(t, err)
	assert.Equal(t, "memory://Ada_Lovelace_Resume_Acme_Cloud.pdf", name)
	require.Len(t, sink.Downloads, 1)
	assert.True(t, bytes.HasPrefix(sink.Downloads[0].Data, []byte("%PDF")))
	assert.Equal(t, "application/pdf", sink.Downloads[0].ContentType)

	summary := "Edited summary"
	content := *r.Resume
	content.Summary = &summary
	updated, err := c.UpdateResume(ctx, r.ID, content)
	require.NoError(t, err)
	require.NotNil(t, updated.Resume.Summary)
	assert.Equal(t, summary, *updated.Resume.Summary)

	require.NoError(t, c.DeleteResume(ctx, r.ID))
	_, err = c.GetResume(ctx, r.ID)
	assert.EqualError(t, err, "Resume not found")
}

func TestRoundTrip_DownloadMissingResume(t *testing.T) {
	t.Parallel()
	sink := &testutil.MemorySink{}
	c := newRoundTrip(t, api.WithDownloadSink(sink))

	_, err := c.DownloadResumePDF(context.Background(), 404, "", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrRequestFailed))
	assert.Equal(t, "Resume not found", err.Error())
	assert.Empty(t, sink.Downloads)
}

func TestRoundTrip_JobDescriptionVersions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newRoundTrip(t)
	seedProfile(t, c)

	jd, err := c.CreateJobDescription(ctx, jobPosting)
	require.NoError(t, err)
	assert.Equal(t, "Untitled Job", jd.Title)

	edited := "Remote friendly.\n" + jobPosting
	jd, err = c.UpdateJobDescription(ctx, jd.ID, model.JobDescriptionUpdate{RawText: &edited})
	require.NoError(t, err)
	assert.Equal(t, edited, jd.RawText)

	versions, err := c.GetJobDescriptionVersions(ctx, jd.ID)
	require.NoError(t, err)
	require.Len(t, versions, 1)

	res, err := jdversions.Compare(append(versions, model.JobDescriptionVersion{VersionNumber: 2, RawText: jd.RawText}), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 0, res.Removed)

	jd, err = c.RestoreJobDescriptionVersion(ctx, jd.ID, versions[0].ID)
	require.NoError(t, err)
	assert.Equal(t, jobPosting, jd.RawText)

	// generating against the saved description renames it and links the resume
	r, err := c.GenerateResume(ctx, jd.RawText, jd.ID, "nl")
	require.NoError(t, err)
	assert.Equal(t, "nl", r.Language)

	jd, err = c.GetJobDescription(ctx, jd.ID)
	require.NoError(t, err)
	assert.Equal(t, "Senior Go Developer at Acme Cloud", jd.Title)
	assert.Equal(t, 1, jd.ResumeCount)

	linked, err := c.GetJobDescriptionResumes(ctx, jd.ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, r.ID, linked[0].ID)

	all, err := c.GetJobDescriptions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, c.DeleteJobDescription(ctx, jd.ID))
	resumes, err := c.GetResumes(ctx)
	require.NoError(t, err)
	assert.Empty(t, resumes)
}
