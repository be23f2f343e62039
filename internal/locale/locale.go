// Package locale holds the presentation conventions used when rendering
// schedule and stay values for people: short date layout, range separator,
// weekday abbreviations and plural-aware messages.
package locale

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locale is an immutable set of presentation rules. The zero value uses an
// ISO-like short date and a plain dash between range ends.
type Locale struct {
	tag      language.Tag
	dayMonth string
	rangeSep string
	weekdays [7]string
}

var (
	// PortugueseBrazil is the reference locale of the daycare product.
	PortugueseBrazil = Locale{
		tag:      language.BrazilianPortuguese,
		dayMonth: "02/01",
		rangeSep: " a ",
		weekdays: [7]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"},
	}

	// English uses US month/day ordering.
	English = Locale{
		tag:      language.AmericanEnglish,
		dayMonth: "01/02",
		rangeSep: " to ",
		weekdays: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	}

	supported = []Locale{PortugueseBrazil, English}
	matcher   = language.NewMatcher([]language.Tag{PortugueseBrazil.tag, English.tag})
)

// Lookup resolves a BCP 47 name such as "pt-BR", "pt" or "en" to a supported
// locale.
func Lookup(name string) (Locale, error) {
	tag, err := language.Parse(name)
	if err != nil {
		return Locale{}, fmt.Errorf("invalid locale %q: %w", name, err)
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return Locale{}, fmt.Errorf("unsupported locale %q", name)
	}
	return supported[index], nil
}

// Tag returns the language tag of the locale.
func (l Locale) Tag() language.Tag {
	return l.tag
}

// IsZero reports whether l is the zero Locale.
func (l Locale) IsZero() bool {
	return l.tag == language.Und
}

// String returns the BCP 47 form of the tag.
func (l Locale) String() string {
	return l.tag.String()
}

// ShortDate renders day and month only, e.g. "15/01" in pt-BR.
func (l Locale) ShortDate(t time.Time) string {
	layout := l.dayMonth
	if layout == "" {
		layout = "01-02"
	}
	return t.Format(layout)
}

// RangeSeparator joins the two ends of a date range.
func (l Locale) RangeSeparator() string {
	if l.rangeSep == "" {
		return " - "
	}
	return l.rangeSep
}

// Weekday returns the abbreviated weekday name.
func (l Locale) Weekday(d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return d.String()
	}
	if name := l.weekdays[d]; name != "" {
		return name
	}
	return d.String()[:3]
}

// List joins items with the locale's list separator.
func (l Locale) List(items []string) string {
	return strings.Join(items, ", ")
}

// Sprintf formats a catalog message. Keys are the English source strings;
// a key missing from the catalog is used as the format itself.
func (l Locale) Sprintf(key string, args ...any) string {
	return message.NewPrinter(l.tag, message.Catalog(catalogue)).Sprintf(key, args...)
}
