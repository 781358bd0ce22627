package validation

// Rule ids. Each finding carries exactly one of these.
const (
	RuleMissingType            = "SCHEMA000"
	RuleMissingRequired        = "SCHEMA001"
	RuleUnknownType            = "SCHEMA002"
	RuleInvalidFormat          = "SCHEMA003"
	RuleUnexpectedEnumValue    = "SCHEMA004"
	RuleInvalidPerformerType   = "SCHEMA005"
	RuleNoDynamicDefinition    = "SCHEMA_DYN0"
	RuleNestedTypeMissing      = "SCHEMA_DYN1"
	RuleNestedTypeUnrecognized = "SCHEMA_DYN2"
	RuleFormatMismatch         = "SCHEMA_DYNFMT"
	RuleInvalidCountry         = "SCHEMA_CTRY"
)

// Severity indicates how serious a finding is
type Severity string

// SeverityError is the only severity the engine emits.
const SeverityError Severity = "error"

// Finding is one diagnostic record. Findings are values and are never
// changed once emitted.
type Finding struct {
	RuleID   string
	Severity Severity
	Message  string
	// Path locates the entity, e.g. "root->location" or "root->performer[1]".
	Path string
	// Type is the entity type the finding was raised against, when known.
	Type string
	// Property is the property the finding concerns, when there is one.
	Property string
}

// Pass records that an entity of a built-in type passed its own
// required, enum and format checks.
type Pass struct {
	Type string
	Path string
	// After is the number of findings emitted before the pass, which places
	// it in traversal order relative to the findings.
	After int
}
