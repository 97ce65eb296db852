package demoserver

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/message"

	"github.com/raysh454/mycv/internal/model"
)

// pdfTemplates are the layouts GET /resumes/{id}/pdf accepts.
var pdfTemplates = []string{"classic", "modern", "brussels", "eu_classic"}

const defaultTemplate = "classic"

// document is a resume reduced to the included sections, with labels and
// dates in the resume language.
type document struct {
	Template string
	Labels   map[string]string

	Name      string
	Contact   []string
	Summary   string
	Jobs      []documentJob
	Skills    []string
	Education []string
	Projects  []documentProject
	Languages []string
}

type documentJob struct {
	Heading     string
	Period      string
	Description string
}

type documentProject struct {
	Name         string
	Description  string
	Technologies string
}

func newDocument(r *model.GeneratedResume, template string) *document {
	p := translator(r.Language)
	doc := &document{
		Template: template,
		Labels:   map[string]string{},
	}
	for _, key := range []string{"Professional Summary", "Experience", "Skills", "Education", "Projects", "Languages"} {
		doc.Labels[key] = p.Sprintf(message.Key(key, key))
	}
	if r.Resume == nil {
		return doc
	}
	rc := r.Resume

	info := rc.PersonalInfo
	doc.Name = stringField(info, "full_name")
	for _, key := range []string{"email", "phone", "location", "linkedin_url"} {
		if v := stringField(info, key); v != "" {
			doc.Contact = append(doc.Contact, v)
		}
	}
	if rc.Summary != nil {
		doc.Summary = *rc.Summary
	}

	for _, w := range rc.WorkExperiences {
		if !w.Included {
			continue
		}
		end := p.Sprintf(message.Key("Present", "Present"))
		if w.EndDate != nil && *w.EndDate != "" {
			end = formatMonth(p, *w.EndDate)
		}
		doc.Jobs = append(doc.Jobs, documentJob{
			Heading:     w.Title + ", " + w.Company,
			Period:      formatMonth(p, w.StartDate) + " - " + end,
			Description: deref(w.Description),
		})
	}
	for _, sk := range rc.Skills {
		if sk.Included {
			doc.Skills = append(doc.Skills, sk.Name)
		}
	}
	for _, e := range rc.Education {
		if !e.Included {
			continue
		}
		line := e.Degree
		if e.FieldOfStudy != nil && *e.FieldOfStudy != "" {
			line += " (" + *e.FieldOfStudy + ")"
		}
		line += ", " + e.Institution
		if e.GraduationYear != nil {
			line += ", " + strconv.Itoa(*e.GraduationYear)
		}
		doc.Education = append(doc.Education, line)
	}
	for _, pr := range rc.Projects {
		if pr.Included {
			doc.Projects = append(doc.Projects, documentProject{
				Name:         pr.Name,
				Description:  deref(pr.Description),
				Technologies: deref(pr.Technologies),
			})
		}
	}
	for _, l := range rc.Languages {
		if l.Included {
			doc.Languages = append(doc.Languages, fmt.Sprintf("%s (%s)", l.Name, l.Level))
		}
	}
	return doc
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// pdfFilename builds FullName_Resume_Company.pdf from ASCII letters, digits,
// underscores and dashes.
func pdfFilename(fullName string, company *string) string {
	if fullName == "" {
		fullName = "Resume"
	}
	c := "Company"
	if company != nil && *company != "" {
		c = *company
	}
	return safeName(fullName) + "_Resume_" + safeName(c) + ".pdf"
}

func safeName(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return -1
	}, s)
}
