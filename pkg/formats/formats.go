package formats

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Predicate reports whether a scalar value conforms to a semantic type
type Predicate func(value string) bool

// Semantic type names
const (
	TypeText       = "Text"
	TypeURL        = "URL"
	TypeEmail      = "Email"
	TypeDate       = "Date"
	TypeDateTime   = "DateTime"
	TypeTime       = "Time"
	TypeNumber     = "Number"
	TypeInteger    = "Integer"
	TypeBoolean    = "Boolean"
	TypeCountry    = "Country"
	TypeGender     = "Gender"
	TypePostalCode = "PostalCode"
)

var (
	emailPattern      = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	dateTimePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(?:[T ]\d{2}:\d{2}(?::\d{2})?)?$`)
	timePattern       = regexp.MustCompile(`^\d{2}:\d{2}(?::\d{2})?$`)
	numberPattern     = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
	postalCodePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9\- ]{1,9}$`)
)

// priority is the order in which expected types are tried
var priority = []string{
	TypeText,
	TypeURL,
	TypeEmail,
	TypeDate,
	TypeDateTime,
	TypeTime,
	TypeNumber,
	TypeInteger,
	TypeBoolean,
	TypeCountry,
	TypeGender,
}

var predicates = map[string]Predicate{
	TypeText:       IsText,
	TypeURL:        IsURL,
	TypeEmail:      IsEmail,
	TypeDate:       IsDate,
	TypeDateTime:   IsDateTime,
	TypeTime:       IsTime,
	TypeNumber:     IsNumber,
	TypeInteger:    IsNumber,
	TypeBoolean:    IsBoolean,
	TypeCountry:    IsCountry,
	TypeGender:     IsGender,
	TypePostalCode: IsPostalCode,
}

// Lookup returns the predicate registered for a semantic type
func Lookup(name string) (Predicate, bool) {
	p, ok := predicates[name]
	return p, ok
}

// Names returns all registered semantic type names, sorted
func Names() []string {
	names := make([]string, 0, len(predicates))
	for name := range predicates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsText accepts any value.
func IsText(string) bool { return true }

// IsURL requires both a scheme and a host.
func IsURL(v string) bool {
	u, err := url.Parse(v)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

func IsEmail(v string) bool { return emailPattern.MatchString(v) }

// IsDateTime matches YYYY-MM-DD, optionally followed by HH:MM[:SS] joined
// with 'T' or a space.
func IsDateTime(v string) bool { return dateTimePattern.MatchString(v) }

func IsTime(v string) bool { return timePattern.MatchString(v) }

// IsNumber matches an unsigned decimal literal.
func IsNumber(v string) bool { return numberPattern.MatchString(v) }

func IsBoolean(v string) bool {
	return strings.EqualFold(v, "true") || strings.EqualFold(v, "false")
}

// IsCountry accepts ISO 3166-1 alpha-2, alpha-3 and numeric codes that name
// a country (macro regions such as 001 or 419 are rejected).
func IsCountry(v string) bool {
	if v == "" {
		return false
	}
	region, err := language.ParseRegion(strings.ToUpper(v))
	if err != nil {
		return false
	}
	return region.IsCountry()
}

func IsGender(v string) bool { return v == "Male" || v == "Female" }

func IsPostalCode(v string) bool { return postalCodePattern.MatchString(v) }

// Outcome classifies the result of checking a value against expected types
type Outcome int

const (
	// NoExpectation means the property declares no range types.
	NoExpectation Outcome = iota
	// Accepted means one of the expected types matched.
	Accepted
	// Unverifiable means nothing matched but some expected types have no
	// predicate, so the value cannot be judged.
	Unverifiable
	// Empty means the value is empty and no expected type accepts it.
	Empty
	// Mismatch means the value conforms to none of the expected types.
	Mismatch
)

func (o Outcome) String() string {
	switch o {
	case NoExpectation:
		return "no_expectation"
	case Accepted:
		return "accepted"
	case Unverifiable:
		return "unverifiable"
	case Empty:
		return "empty"
	case Mismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}

// Result is the outcome of Check
type Result struct {
	Outcome Outcome
	// Matched is the first expected type the value satisfied.
	Matched string
	// Unverifiable lists expected types that have no predicate.
	Unverifiable []string
	// Tried lists the expected types in the order they were tested.
	Tried []string
}

// Check tests value against each expected type in priority order and stops
// at the first match.
func Check(expected []string, value string) Result {
	ordered := Order(expected)
	if len(ordered) == 0 {
		return Result{Outcome: NoExpectation}
	}

	res := Result{Tried: ordered}
	for _, name := range ordered {
		p, ok := predicates[name]
		if !ok {
			res.Unverifiable = append(res.Unverifiable, name)
			continue
		}
		if p(value) {
			res.Outcome = Accepted
			res.Matched = name
			res.Unverifiable = nil
			return res
		}
	}

	switch {
	case len(res.Unverifiable) > 0:
		res.Outcome = Unverifiable
	case strings.TrimSpace(value) == "":
		res.Outcome = Empty
	default:
		res.Outcome = Mismatch
	}
	return res
}

// Order deduplicates expected types and sorts them by check priority.
// Types outside the priority list keep their declared order after it.
func Order(expected []string) []string {
	seen := make(map[string]bool, len(expected))
	out := make([]string, 0, len(expected))
	for _, name := range expected {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rank(out[i]) < rank(out[j])
	})
	return out
}

func rank(name string) int {
	for i, p := range priority {
		if p == name {
			return i
		}
	}
	return len(priority)
}
