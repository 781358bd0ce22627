package schema

import (
	"sort"
	"strings"
)

// ClassDefinition is a vocabulary class such as Event or Place
type ClassDefinition struct {
	ID         string
	Label      string
	Comment    string
	SubClassOf []string
}

// PropertyDefinition is a vocabulary property and the short names of the
// types its values may take.
type PropertyDefinition struct {
	ID            string
	Label         string
	Comment       string
	RangeIncludes []string
}

// ShortName returns the trailing segment of a vocabulary identifier:
// "schema:Person", "https://schema.org/Person" and "Person" all yield "Person".
func ShortName(id string) string {
	if i := strings.LastIndexAny(id, "/#:"); i >= 0 {
		return id[i+1:]
	}
	return id
}

// Registry holds built-in type rules and, once merged, the dynamic
// vocabulary definitions. It is read-only after construction.
type Registry struct {
	rules      map[string]*TypeRule
	classes    map[string]ClassDefinition
	properties map[string]PropertyDefinition
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		rules:      make(map[string]*TypeRule),
		classes:    make(map[string]ClassDefinition),
		properties: make(map[string]PropertyDefinition),
	}
}

// New creates a registry holding the built-in rules
func New() *Registry {
	r := NewRegistry()
	for _, rule := range BuiltinRules() {
		r.Register(rule)
	}
	return r
}

// Register adds a type rule to the registry
func (r *Registry) Register(rule *TypeRule) {
	r.rules[rule.Name] = rule
}

// LookupType retrieves a built-in rule by type name
func (r *Registry) LookupType(name string) (*TypeRule, bool) {
	rule, ok := r.rules[name]
	return rule, ok
}

// Types returns the built-in type names, sorted
func (r *Registry) Types() []string {
	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MergeDynamic indexes vocabulary definitions under both their label and
// their short id. The first definition seen for a key is kept.
func (r *Registry) MergeDynamic(classes []ClassDefinition, properties []PropertyDefinition) {
	for _, c := range classes {
		for _, key := range indexKeys(c.Label, c.ID) {
			if _, exists := r.classes[key]; !exists {
				r.classes[key] = c
			}
		}
	}
	for _, p := range properties {
		for _, key := range indexKeys(p.Label, p.ID) {
			if _, exists := r.properties[key]; !exists {
				r.properties[key] = p
			}
		}
	}
}

func indexKeys(label, id string) []string {
	keys := make([]string, 0, 2)
	if label != "" {
		keys = append(keys, label)
	}
	if short := ShortName(id); short != "" && short != label {
		keys = append(keys, short)
	}
	return keys
}

// LookupDynamicClass retrieves a vocabulary class by label or short id
func (r *Registry) LookupDynamicClass(name string) (ClassDefinition, bool) {
	c, ok := r.classes[name]
	return c, ok
}

// LookupDynamicProperty retrieves a vocabulary property by label or short id
func (r *Registry) LookupDynamicProperty(name string) (PropertyDefinition, bool) {
	p, ok := r.properties[name]
	return p, ok
}

// DynamicSize returns the number of indexed class and property keys
func (r *Registry) DynamicSize() (classes, properties int) {
	return len(r.classes), len(r.properties)
}
