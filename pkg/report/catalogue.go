package report

import "github.com/nigelhorne/schema-validator/pkg/validation"

// ExitFailure is returned when the input itself could not be read
const ExitFailure = 1

// exitUnmapped is used for a rule id missing from the catalogue
const exitUnmapped = 99

// RuleInfo describes one rule in the catalogue
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	ExitCode    int
}

var catalogue = []RuleInfo{
	{validation.RuleMissingType, "MissingType", "Entity has a missing or invalid @type", 2},
	{validation.RuleMissingRequired, "MissingRequired", "Required property is missing", 3},
	{validation.RuleUnknownType, "UnknownType", "Type is not known to the schema", 4},
	{validation.RuleInvalidFormat, "InvalidFormat", "Property value has an invalid format", 5},
	{validation.RuleUnexpectedEnumValue, "UnexpectedEnumValue", "Property value is outside its enumeration", 6},
	{validation.RuleInvalidPerformerType, "InvalidPerformerType", "Performer is not a PerformingGroup or Person", 7},
	{validation.RuleNoDynamicDefinition, "NoDynamicDefinition", "Type has no definition in the loaded vocabulary", 10},
	{validation.RuleNestedTypeMissing, "NestedTypeMissing", "Nested object is missing @type", 11},
	{validation.RuleNestedTypeUnrecognized, "NestedTypeUnrecognized", "Nested object has a type the vocabulary does not define", 12},
	{validation.RuleFormatMismatch, "FormatMismatch", "Property value does not match any expected type", 13},
	{validation.RuleInvalidCountry, "InvalidCountry", "Invalid country code", 20},
}

// Catalogue returns every rule in exit code order
func Catalogue() []RuleInfo {
	out := make([]RuleInfo, len(catalogue))
	copy(out, catalogue)
	return out
}

// LookupRule finds a rule by id
func LookupRule(id string) (RuleInfo, bool) {
	for _, r := range catalogue {
		if r.ID == id {
			return r, true
		}
	}
	return RuleInfo{}, false
}

// ExitCode maps the last finding's rule to the process exit status.
// The most recent finding decides, not the most severe; no findings is 0.
func ExitCode(findings []validation.Finding) int {
	if len(findings) == 0 {
		return 0
	}
	if r, ok := LookupRule(findings[len(findings)-1].RuleID); ok {
		return r.ExitCode
	}
	return exitUnmapped
}
