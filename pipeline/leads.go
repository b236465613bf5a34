package pipeline

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/proago/crm-engine/generic"
)

// =============================================================================
// CONTACT NORMALIZATION
// =============================================================================

type phonePrefix struct {
	code     string
	min, max int
}

// Longest codes first so +352 is not read as +35.
var phonePrefixes = []phonePrefix{
	{"+352", 6, 12}, // Luxembourg
	{"+33", 6, 12},  // France
	{"+32", 6, 12},  // Belgium
	{"+49", 6, 13},  // Germany
}

// FormatPhone normalizes an international mobile number to "+CC digits".
// Only Luxembourg, France, Belgium and Germany are accepted.
func FormatPhone(raw string) (string, bool) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	if !strings.HasPrefix(clean, "+") {
		return "", false
	}
	for _, p := range phonePrefixes {
		if !strings.HasPrefix(clean, p.code) {
			continue
		}
		rest := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, clean[len(p.code):])
		if len(rest) < p.min || len(rest) > p.max {
			return "", false
		}
		return p.code + " " + rest, true
	}
	return "", false
}

var titleCaser = cases.Title(language.Und)

// TitleCase lowercases a name then capitalizes each word.
func TitleCase(s string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(s)))
}

// =============================================================================
// LEADS
// =============================================================================

const defaultSource = "Indeed"

// Lead is the intake form or import row for a new candidate.
type Lead struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Source string `json:"source"`
	Calls  int    `json:"calls"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

// NewEntity validates a lead and turns it into an intake entity. A name and
// at least one of phone or email are required; a phone, when given, must be
// valid. Date and time default to now.
func NewEntity(l Lead, now time.Time) (Entity, error) {
	name := TitleCase(l.Name)
	if name == "" {
		return Entity{}, &generic.FieldError{Field: "name", Message: "required"}
	}
	var phone string
	if strings.TrimSpace(l.Phone) != "" {
		p, ok := FormatPhone(l.Phone)
		if !ok {
			return Entity{}, &generic.FieldError{Field: "phone", Message: "not a valid +352/+33/+32/+49 mobile number"}
		}
		phone = p
	}
	email := strings.TrimSpace(l.Email)
	if phone == "" && email == "" {
		return Entity{}, &generic.FieldError{Field: "contact", Message: "mobile or email required"}
	}
	if l.Date != "" {
		if _, err := generic.ParseDate(l.Date); err != nil {
			return Entity{}, err
		}
	}

	e := Entity{
		ID:     generic.EntityID(uuid.NewString()),
		Name:   name,
		Phone:  phone,
		Email:  email,
		Source: strings.TrimSpace(l.Source),
		Calls:  max(l.Calls, 0),
		Date:   l.Date,
		Time:   l.Time,
	}
	if e.Source == "" {
		e.Source = defaultSource
	}
	if e.Date == "" {
		e.Date = generic.DateOf(now).String()
	}
	if e.Time == "" {
		e.Time = now.Format("15:04")
	}
	return e, nil
}

// AddLead appends a new entity to intake.
func AddLead(b Board, l Lead, now time.Time) (Board, Entity, error) {
	e, err := NewEntity(l, now)
	if err != nil {
		return b, Entity{}, err
	}
	out := b.Clone()
	out.Lanes[StageIntake] = append(out.Lanes[StageIntake], e)
	return out, e, nil
}

// ImportLeads puts every valid lead at the front of intake, in file order.
// Invalid rows are skipped; if none is valid the board is unchanged and
// ErrNoValidLeads is returned.
func ImportLeads(b Board, leads []Lead, now time.Time) (Board, []Entity, error) {
	var added []Entity
	for _, l := range leads {
		e, err := NewEntity(l, now)
		if err != nil {
			continue
		}
		added = append(added, e)
	}
	if len(added) == 0 {
		return b, nil, ErrNoValidLeads
	}
	out := b.Clone()
	out.Lanes[StageIntake] = append(append([]Entity{}, added...), out.Lanes[StageIntake]...)
	return out, added, nil
}
