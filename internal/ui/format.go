package ui

import (
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PopulationFormatter groups digits the way the locale does.
type PopulationFormatter struct {
	tag     language.Tag
	printer *message.Printer
}

func NewPopulationFormatter(tag language.Tag) PopulationFormatter {
	return PopulationFormatter{tag: tag, printer: message.NewPrinter(tag)}
}

func (f PopulationFormatter) Format(n int64) string {
	if f.printer == nil {
		f = NewPopulationFormatter(language.English)
	}
	return f.printer.Sprintf("%d", n)
}

func (f PopulationFormatter) Locale() language.Tag { return f.tag }

// LocaleTag resolves a locale name. Empty means: LC_ALL, then LANG, then English.
// POSIX names like "de_DE.UTF-8" are accepted.
func LocaleTag(name string) language.Tag {
	if name == "" {
		name = os.Getenv("LC_ALL")
	}
	if name == "" {
		name = os.Getenv("LANG")
	}
	name, _, _ = strings.Cut(name, ".")
	name, _, _ = strings.Cut(name, "@")
	name = strings.ReplaceAll(name, "_", "-")
	if name == "" || name == "C" || name == "POSIX" {
		return language.English
	}
	tag, err := language.Parse(name)
	if err != nil {
		return language.English
	}
	return tag
}
