package demoserver

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/raysh454/mycv/internal/model"
)

var (
	monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
	emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
	photoPattern = regexp.MustCompile(`^data:image/(jpeg|png|webp);base64,[A-Za-z0-9+/=]+$`)
)

const (
	minJobDescription = 100
	maxPhotoDataURL   = 15_000_000
	maxJobTitle       = 100
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	patterns := map[string]*regexp.Regexp{
		"yyyymm":    monthPattern,
		"loosemail": emailPattern,
		"photourl":  photoPattern,
	}
	for tag, re := range patterns {
		re := re
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		}); err != nil {
			panic(err)
		}
	}
	return v
}

// checker collects FastAPI-style field errors for one request body.
type checker struct {
	errs []fieldError
}

func (c *checker) check(field string, value any, tag, msg string) {
	if err := validate.Var(value, tag); err != nil {
		c.errs = append(c.errs, bodyError(field, msg))
	}
}

func (c *checker) required(field, value string) {
	c.check(field, strings.TrimSpace(value), "required", "Field required")
}

func (c *checker) month(field string, value *string) {
	if value != nil {
		c.check(field, *value, "yyyymm", "Invalid date format. Use YYYY-MM")
	}
}

func validatePersonalInfo(in model.PersonalInfoInput) []fieldError {
	var c checker
	c.required("full_name", in.FullName)
	c.check("email", in.Email, "loosemail", "Invalid email address")
	return c.errs
}

func validateWorkExperience(in model.WorkExperienceInput) []fieldError {
	var c checker
	c.required("company", in.Company)
	c.required("title", in.Title)
	c.month("start_date", &in.StartDate)
	c.month("end_date", in.EndDate)
	return c.errs
}

func validateEducation(in model.EducationInput) []fieldError {
	var c checker
	c.required("institution", in.Institution)
	c.required("degree", in.Degree)
	if in.GraduationYear != nil {
		c.check("graduation_year", *in.GraduationYear, "gte=1900,lte=2100", "Graduation year must be between 1900 and 2100")
	}
	return c.errs
}

func validateProject(in model.ProjectInput) []fieldError {
	var c checker
	c.required("name", in.Name)
	c.month("start_date", in.StartDate)
	c.month("end_date", in.EndDate)
	return c.errs
}

func validateLanguage(in model.LanguageInput) []fieldError {
	var c checker
	c.required("name", in.Name)
	c.check("level", string(in.Level), "oneof=A1 A2 B1 B2 C1 C2",
		fmt.Sprintf("Input should be 'A1', 'A2', 'B1', 'B2', 'C1' or 'C2', got %q", in.Level))
	return c.errs
}

func validatePhoto(data string) []fieldError {
	var c checker
	c.check("image_data", data, "photourl", "Invalid image data format")
	if len(c.errs) == 0 {
		c.check("image_data", data, fmt.Sprintf("max=%d", maxPhotoDataURL), "Image data too large")
	}
	return c.errs
}

func validateJobText(field, text string) []fieldError {
	var c checker
	c.check(field, strings.TrimSpace(text), fmt.Sprintf("min=%d", minJobDescription),
		fmt.Sprintf("Job description must be at least %d characters", minJobDescription))
	return c.errs
}

func validateJobDescriptionUpdate(in model.JobDescriptionUpdate) []fieldError {
	var c checker
	if in.Title != nil {
		c.check("title", *in.Title, fmt.Sprintf("max=%d", maxJobTitle),
			fmt.Sprintf("String should have at most %d characters", maxJobTitle))
	}
	if in.RawText != nil {
		c.errs = append(c.errs, validateJobText("raw_text", *in.RawText)...)
	}
	return c.errs
}

func validateGenerate(in model.GenerateResumeRequest) []fieldError {
	errs := validateJobText("job_description", in.JobDescription)
	var c checker
	c.check("language", in.Language, "oneof=en fr nl", "Language must be en, fr, or nl")
	return append(errs, c.errs...)
}

func validateTemplate(template string) []fieldError {
	var c checker
	c.check("template", template, "oneof="+strings.Join(pdfTemplates, " "),
		"Template must be one of "+strings.Join(pdfTemplates, ", "))
	for i := range c.errs {
		c.errs[i].Loc[0] = "query"
	}
	return c.errs
}

func validateProfileImport(in model.ProfileImport) []fieldError {
	errs := validatePersonalInfo(in.PersonalInfo)
	for _, w := range in.WorkExperiences {
		errs = append(errs, validateWorkExperience(w)...)
	}
	for _, e := range in.Education {
		errs = append(errs, validateEducation(e)...)
	}
	for _, p := range in.Projects {
		errs = append(errs, validateProject(p)...)
	}
	for _, l := range in.Languages {
		errs = append(errs, validateLanguage(l)...)
	}
	for _, sk := range in.Skills {
		var c checker
		c.required("skills", sk.Name)
		errs = append(errs, c.errs...)
	}
	return errs
}
