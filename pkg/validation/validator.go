package validation

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/nigelhorne/schema-validator/pkg/formats"
	"github.com/nigelhorne/schema-validator/pkg/observability"
	"github.com/nigelhorne/schema-validator/pkg/schema"
)

// RootPath names the top of an entity tree
const RootPath = "root"

const (
	typeMusicEvent      = "MusicEvent"
	typePerformingGroup = "PerformingGroup"
	typePerson          = "Person"
	propPerformer       = "performer"
)

// keys skipped by dynamic validation
var reservedKeys = map[string]bool{
	"@type":    true,
	"@context": true,
	"@id":      true,
}

// Validator walks JSON-LD entities and emits findings into a Context
type Validator struct {
	logger  logrus.FieldLogger
	metrics *observability.Metrics
}

// NewValidator creates a new validator. Both arguments may be nil.
func NewValidator(logger logrus.FieldLogger, metrics *observability.Metrics) *Validator {
	if logger == nil {
		logger = observability.Discard()
	}
	return &Validator{logger: logger, metrics: metrics}
}

// ValidateDocument decodes one JSON-LD block and validates it. A top-level
// array validates each element at root[i]. A decode error is returned
// without emitting findings.
func (v *Validator) ValidateDocument(raw []byte, ctx *Context) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("failed to parse JSON-LD block: %w", err)
	}

	if items, ok := doc.([]any); ok {
		for i, item := range items {
			v.Validate(item, ctx, fmt.Sprintf("%s[%d]", RootPath, i))
		}
		return nil
	}

	v.Validate(doc, ctx, RootPath)
	return nil
}

// Validate checks entity and everything nested under it, appending findings
// to ctx in pre-order.
func (v *Validator) Validate(entity any, ctx *Context, path string) {
	if path == "" {
		path = RootPath
	}

	obj, ok := entity.(map[string]any)
	if !ok {
		v.emit(ctx, Finding{
			RuleID:  RuleMissingType,
			Message: "Entity is not an object with an @type",
			Path:    path,
		})
		return
	}

	raw, present := obj["@type"]
	typeName, isString := raw.(string)
	if !present || !isString || typeName == "" {
		msg := "Missing @type"
		if present {
			msg = fmt.Sprintf("Invalid @type %v (must be a non-empty string)", raw)
		}
		v.emit(ctx, Finding{RuleID: RuleMissingType, Message: msg, Path: path})
		return
	}

	v.metrics.RecordEntity(typeName)

	if rule, ok := ctx.Registry.LookupType(typeName); ok {
		v.validateBuiltin(obj, rule, ctx, path)

		if typeName == typeMusicEvent {
			v.checkPerformers(obj, ctx, path)
		}

		if ctx.Dynamic {
			if _, ok := ctx.Registry.LookupDynamicClass(typeName); ok {
				v.validateDynamic(obj, typeName, ctx, path)
			} else {
				v.emit(ctx, Finding{
					RuleID:  RuleNoDynamicDefinition,
					Message: fmt.Sprintf("No dynamic definition for type %q", typeName),
					Path:    path,
					Type:    typeName,
				})
			}
		}
		return
	}

	if ctx.Dynamic {
		if _, ok := ctx.Registry.LookupDynamicClass(typeName); ok {
			v.validateDynamic(obj, typeName, ctx, path)
			return
		}
	}

	v.emit(ctx, Finding{
		RuleID:  RuleUnknownType,
		Message: fmt.Sprintf("Unknown type %q", typeName),
		Path:    path,
		Type:    typeName,
	})
}

func (v *Validator) validateBuiltin(obj map[string]any, rule *schema.TypeRule, ctx *Context, path string) {
	before := ctx.Len()

	for _, prop := range rule.Required {
		if _, ok := obj[prop]; !ok {
			v.emit(ctx, Finding{
				RuleID:   RuleMissingRequired,
				Message:  fmt.Sprintf("Missing required property %q for type %q", prop, rule.Name),
				Path:     path,
				Type:     rule.Name,
				Property: prop,
			})
		}
	}

	for _, prop := range sortedKeys(rule.Enum) {
		value, ok := obj[prop]
		if !ok {
			continue
		}
		s, isScalar := scalarString(value)
		if isScalar && rule.Allows(prop, s) {
			continue
		}
		v.emit(ctx, Finding{
			RuleID: RuleUnexpectedEnumValue,
			Message: fmt.Sprintf("Unexpected value %s for property %q (allowed: %s)",
				describe(value), prop, strings.Join(rule.Enum[prop], ", ")),
			Path:     path,
			Type:     rule.Name,
			Property: prop,
		})
	}

	for _, prop := range sortedKeys(rule.PropertyValidations) {
		value, ok := obj[prop]
		if !ok {
			continue
		}
		check := rule.PropertyValidations[prop]
		for _, item := range asList(value) {
			s, isScalar := scalarString(item)
			if isScalar && check.Check(s) {
				continue
			}
			v.emit(ctx, Finding{
				RuleID:   RuleInvalidFormat,
				Message:  fmt.Sprintf("Invalid format for property %q: %s is not a valid %s", prop, describe(item), check.Format),
				Path:     path,
				Type:     rule.Name,
				Property: prop,
			})
		}
	}

	if ctx.Len() == before {
		ctx.pass(rule.Name, path)
	}

	for _, prop := range sortedKeys(rule.Nested) {
		value, ok := obj[prop]
		if !ok {
			continue
		}
		switch child := value.(type) {
		case map[string]any:
			v.Validate(child, ctx, path+"->"+prop)
		case []any:
			for i, item := range child {
				v.Validate(item, ctx, fmt.Sprintf("%s->%s[%d]", path, prop, i))
			}
		}
	}
}

// checkPerformers requires every performer to be a PerformingGroup or Person object.
func (v *Validator) checkPerformers(obj map[string]any, ctx *Context, path string) {
	value, ok := obj[propPerformer]
	if !ok {
		return
	}

	items, isList := value.([]any)
	if !isList {
		items = []any{value}
	}

	for i, item := range items {
		at := path + "->" + propPerformer
		if isList {
			at = fmt.Sprintf("%s[%d]", at, i)
		}

		if m, ok := item.(map[string]any); ok {
			if t, _ := m["@type"].(string); t == typePerformingGroup || t == typePerson {
				continue
			}
		}

		v.emit(ctx, Finding{
			RuleID:   RuleInvalidPerformerType,
			Message:  fmt.Sprintf("Performer must be a %s or %s, got %s", typePerformingGroup, typePerson, describeType(item)),
			Path:     at,
			Type:     typeMusicEvent,
			Property: propPerformer,
		})
	}
}

// validateDynamic checks an entity against the loaded vocabulary. Properties
// without a vocabulary definition are accepted silently.
func (v *Validator) validateDynamic(obj map[string]any, typeName string, ctx *Context, path string) {
	for _, prop := range sortedKeys(obj) {
		if reservedKeys[prop] {
			continue
		}
		at := path + "->" + prop

		switch value := obj[prop].(type) {
		case map[string]any:
			v.checkNestedType(value, prop, typeName, ctx, at)
		case []any:
			for i, item := range value {
				itemPath := fmt.Sprintf("%s[%d]", at, i)
				if m, ok := item.(map[string]any); ok {
					v.checkNestedType(m, prop, typeName, ctx, itemPath)
					continue
				}
				if def, ok := ctx.Registry.LookupDynamicProperty(prop); ok {
					v.checkFormat(prop, item, def, typeName, ctx, itemPath)
				}
			}
		default:
			if def, ok := ctx.Registry.LookupDynamicProperty(prop); ok {
				v.checkFormat(prop, value, def, typeName, ctx, at)
			}
		}
	}
}

func (v *Validator) checkNestedType(obj map[string]any, prop, parentType string, ctx *Context, path string) {
	nestedType, ok := obj["@type"].(string)
	if !ok || nestedType == "" {
		v.emit(ctx, Finding{
			RuleID:   RuleNestedTypeMissing,
			Message:  fmt.Sprintf("Nested object in property %q is missing @type", prop),
			Path:     path,
			Type:     parentType,
			Property: prop,
		})
		return
	}

	if _, ok := ctx.Registry.LookupDynamicClass(nestedType); !ok {
		v.emit(ctx, Finding{
			RuleID:   RuleNestedTypeUnrecognized,
			Message:  fmt.Sprintf("Nested object in property %q has unrecognized type %q", prop, nestedType),
			Path:     path,
			Type:     parentType,
			Property: prop,
		})
	}
}

// checkFormat validates a scalar value against the property's rangeIncludes.
func (v *Validator) checkFormat(prop string, value any, def schema.PropertyDefinition, parentType string, ctx *Context, path string) {
	s, _ := scalarString(value)
	res := formats.Check(def.RangeIncludes, s)

	switch res.Outcome {
	case formats.NoExpectation, formats.Accepted:
		return
	case formats.Unverifiable:
		v.logger.WithFields(logrus.Fields{
			"property": prop,
			"types":    strings.Join(res.Unverifiable, ","),
			"path":     path,
		}).Debug("no format check implemented for expected types")
		return
	}

	rule := RuleFormatMismatch
	for _, t := range res.Tried {
		if t == formats.TypeCountry {
			rule = RuleInvalidCountry
			break
		}
	}

	expected := strings.Join(res.Tried, ", ")
	msg := fmt.Sprintf("Value %q for property %q does not match any expected type (%s)", s, prop, expected)
	switch {
	case res.Outcome == formats.Empty:
		msg = fmt.Sprintf("Property %q is empty; expected one of: %s", prop, expected)
	case rule == RuleInvalidCountry:
		msg = fmt.Sprintf("Invalid country code %q for property %q", s, prop)
	}

	v.emit(ctx, Finding{
		RuleID:   rule,
		Message:  msg,
		Path:     path,
		Type:     parentType,
		Property: prop,
	})
}

func (v *Validator) emit(ctx *Context, f Finding) {
	if f.Severity == "" {
		f.Severity = SeverityError
	}
	ctx.add(f)
	v.metrics.RecordFinding(f.RuleID)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func asList(value any) []any {
	if items, ok := value.([]any); ok {
		return items
	}
	return []any{value}
}

// scalarString renders a JSON scalar as text. Objects and arrays report false.
func scalarString(value any) (string, bool) {
	switch val := value.(type) {
	case nil:
		return "", true
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}

func describe(value any) string {
	if s, ok := scalarString(value); ok {
		return strconv.Quote(s)
	}
	return describeType(value)
}

func describeType(value any) string {
	switch val := value.(type) {
	case map[string]any:
		if t, ok := val["@type"].(string); ok {
			return strconv.Quote(t)
		}
		return "an object without @type"
	case []any:
		return "an array"
	default:
		s, _ := scalarString(value)
		return fmt.Sprintf("scalar %q", s)
	}
}
