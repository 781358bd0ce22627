package vocabulary

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/nigelhorne/schema-validator/pkg/schema"
)

type document struct {
	Graph []map[string]any `json:"@graph"`
}

// Parse extracts class and property definitions from a JSON-LD vocabulary
// document. A node is a class when one of its @type values is "Class"
// (e.g. "rdfs:Class") and a property when one is "Property".
func Parse(data []byte) (*Vocabulary, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedVocabulary, err)
	}
	if doc.Graph == nil {
		return nil, fmt.Errorf("%w: no @graph", ErrMalformedVocabulary)
	}

	vocab := &Vocabulary{}
	for _, node := range doc.Graph {
		id, _ := node["@id"].(string)
		if id == "" {
			continue
		}

		var isClass, isProperty bool
		for _, t := range stringList(node["@type"]) {
			switch schema.ShortName(t) {
			case "Class":
				isClass = true
			case "Property":
				isProperty = true
			}
		}
		if !isClass && !isProperty {
			continue
		}

		var label, comment string
		var rangeIncludes, subClassOf []string
		for key, value := range node {
			switch schema.ShortName(key) {
			case "label":
				label = literal(value)
			case "comment":
				comment = literal(value)
			case "rangeIncludes":
				rangeIncludes = references(value)
			case "subClassOf":
				subClassOf = references(value)
			}
		}

		if isClass {
			vocab.Classes = append(vocab.Classes, schema.ClassDefinition{
				ID:         id,
				Label:      label,
				Comment:    comment,
				SubClassOf: subClassOf,
			})
		}
		if isProperty {
			vocab.Properties = append(vocab.Properties, schema.PropertyDefinition{
				ID:            id,
				Label:         label,
				Comment:       comment,
				RangeIncludes: rangeIncludes,
			})
		}
	}

	return vocab, nil
}

// stringList flattens a string or array of strings
func stringList(value any) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// literal reads a plain string, a {"@value": ...} object or the first
// English entry of an array of either.
func literal(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]any:
		s, _ := v["@value"].(string)
		return s
	case []any:
		first := ""
		for _, item := range v {
			s := literal(item)
			if m, ok := item.(map[string]any); ok && m["@language"] == "en" {
				return s
			}
			if first == "" {
				first = s
			}
		}
		return first
	}
	return ""
}

// references returns the short names of {"@id": ...} objects
func references(value any) []string {
	switch v := value.(type) {
	case map[string]any:
		if id, ok := v["@id"].(string); ok {
			return []string{schema.ShortName(id)}
		}
	case string:
		return []string{schema.ShortName(v)}
	case []any:
		var out []string
		for _, item := range v {
			out = append(out, references(item)...)
		}
		return out
	}
	return nil
}
