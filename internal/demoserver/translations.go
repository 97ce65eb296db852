package demoserver

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Resume labels are keyed by their English text.
var labelTranslations = map[language.Tag]map[string]string{
	language.French: {
		"Professional Summary": "Profil professionnel",
		"Experience":           "Expérience",
		"Skills":               "Compétences",
		"Education":            "Formation",
		"Languages":            "Langues",
		"Projects":             "Projets",
		"Present":              "Présent",
		"Jan": "Janv", "Feb": "Fév", "Mar": "Mars", "Apr": "Avr", "May": "Mai", "Jun": "Juin",
		"Jul": "Juil", "Aug": "Août", "Sep": "Sept", "Oct": "Oct", "Nov": "Nov", "Dec": "Déc",
	},
	language.Dutch: {
		"Professional Summary": "Profiel",
		"Experience":           "Werkervaring",
		"Skills":               "Vaardigheden",
		"Education":            "Opleiding",
		"Languages":            "Talen",
		"Projects":             "Projecten",
		"Present":              "Heden",
		"Jan": "Jan", "Feb": "Feb", "Mar": "Mrt", "Apr": "Apr", "May": "Mei", "Jun": "Jun",
		"Jul": "Jul", "Aug": "Aug", "Sep": "Sep", "Oct": "Okt", "Nov": "Nov", "Dec": "Dec",
	},
}

var labels = newLabelCatalog()

func newLabelCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, entries := range labelTranslations {
		for key, msg := range entries {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// translator returns a printer for a resume language; unknown codes fall
// back to English.
func translator(lang string) *message.Printer {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag, message.Catalog(labels))
}

var monthAbbrev = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// formatMonth renders YYYY-MM as "Jan 2020" in the printer's language.
// Anything else is returned as given.
func formatMonth(p *message.Printer, ym string) string {
	year, month, ok := strings.Cut(ym, "-")
	if !ok {
		return ym
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return ym
	}
	abbrev := monthAbbrev[m-1]
	return p.Sprintf(message.Key(abbrev, abbrev)) + " " + year
}
