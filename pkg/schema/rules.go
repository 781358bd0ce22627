package schema

import (
	"github.com/nigelhorne/schema-validator/pkg/formats"
)

// TypeRule holds the built-in checks for one entity type.
// Rules are built once and never modified afterwards.
type TypeRule struct {
	Name string
	// Required lists property names in the order they are checked.
	Required []string
	// Nested maps a property to the type expected for its object values.
	Nested map[string]string
	// Enum maps a property to its allowed literal values.
	Enum map[string][]string
	// PropertyValidations maps a property to a scalar format check.
	PropertyValidations map[string]Validation
}

// Validation is a named format check applied to a scalar property value
type Validation struct {
	Format string
	Check  formats.Predicate
}

// Allows reports whether value is in the enum set for property.
// Properties without an enum constraint allow anything.
func (r *TypeRule) Allows(property, value string) bool {
	allowed, ok := r.Enum[property]
	if !ok {
		return true
	}
	for _, a := range allowed {
		if a == value {
			return true
		}
	}
	return false
}

func validation(format string) Validation {
	check, ok := formats.Lookup(format)
	if !ok {
		panic("schema: unknown format " + format)
	}
	return Validation{Format: format, Check: check}
}

// BuiltinRules returns the fixed rule table
func BuiltinRules() []*TypeRule {
	return []*TypeRule{
		{
			Name:     "MusicEvent",
			Required: []string{"name", "startdate", "location"},
			Nested: map[string]string{
				"location":  "PostalAddress",
				"performer": "PerformingGroup",
			},
			Enum: map[string][]string{
				"eventStatus": {
					"EventScheduled",
					"EventCancelled",
					"EventPostponed",
					"EventRescheduled",
					"EventMovedOnline",
				},
			},
			PropertyValidations: map[string]Validation{
				"startdate": validation(formats.TypeDateTime),
				"enddate":   validation(formats.TypeDateTime),
				"url":       validation(formats.TypeURL),
			},
		},
		{
			Name:     "PostalAddress",
			Required: []string{"addressCountry", "addressLocality"},
			Enum: map[string][]string{
				"addressCountry": {"United_States", "Canada", "United_Kingdom", "Australia"},
			},
			PropertyValidations: map[string]Validation{
				"postalCode": validation(formats.TypePostalCode),
			},
		},
		{
			Name:     "PerformingGroup",
			Required: []string{"name"},
			Nested: map[string]string{
				"member": "Person",
			},
			PropertyValidations: map[string]Validation{
				"url": validation(formats.TypeURL),
			},
		},
		{
			Name:     "Person",
			Required: []string{"name"},
			Enum: map[string][]string{
				"gender": {"Male", "Female"},
			},
			PropertyValidations: map[string]Validation{
				"birthDate": validation(formats.TypeDate),
				"email":     validation(formats.TypeEmail),
				"url":       validation(formats.TypeURL),
			},
		},
	}
}
