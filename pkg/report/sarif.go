package report

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/nigelhorne/schema-validator/pkg/validation"
)

const (
	SARIFVersion = "2.1.0"
	SARIFSchema  = "https://json.schemastore.org/sarif-2.1.0.json"

	ToolName           = "schema-validator"
	ToolInformationURI = "https://github.com/nigelhorne/schema-validator"

	// DefaultSARIFPath is where the report is written unless overridden
	DefaultSARIFPath = "schema_validation.sarif"
)

// SARIF is the top-level log object
type SARIF struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

// Run is one invocation of the tool
type Run struct {
	Tool              Tool              `json:"tool"`
	AutomationDetails AutomationDetails `json:"automationDetails"`
	Results           []Result          `json:"results"`
}

// Tool describes the analysis tool that produced a run
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver names the tool and lists the rules it can report
type Driver struct {
	Name           string                `json:"name"`
	InformationURI string                `json:"informationUri"`
	Version        string                `json:"version"`
	Rules          []ReportingDescriptor `json:"rules"`
}

// ReportingDescriptor describes one rule in the catalogue
type ReportingDescriptor struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	ShortDescription Message `json:"shortDescription"`
}

// AutomationDetails identifies the run for GitHub code scanning
type AutomationDetails struct {
	GUID string `json:"guid"`
}

// Result is a single finding
type Result struct {
	RuleID    string     `json:"ruleId"`
	Level     string     `json:"level"`
	Message   Message    `json:"message"`
	Locations []Location `json:"locations"`
}

// Message holds plain text shown for a result or rule
type Message struct {
	Text string `json:"text"`
}

// Location places a result in the artifact and in the JSON-LD tree
type Location struct {
	PhysicalLocation PhysicalLocation  `json:"physicalLocation"`
	LogicalLocations []LogicalLocation `json:"logicalLocations,omitempty"`
}

// PhysicalLocation refers to the validated file or URL
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
}

// ArtifactLocation is the URI of the validated input
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// LogicalLocation is the entity path, e.g. "root->location"
type LogicalLocation struct {
	FullyQualifiedName string `json:"fullyQualifiedName"`
	Kind               string `json:"kind,omitempty"`
}

// BuildSARIF assembles a report with one result per finding. artifact is
// the input path or URL.
func BuildSARIF(findings []validation.Finding, artifact, toolVersion string) *SARIF {
	rules := make([]ReportingDescriptor, 0, len(catalogue))
	for _, r := range catalogue {
		rules = append(rules, ReportingDescriptor{
			ID:               r.ID,
			Name:             r.Name,
			ShortDescription: Message{Text: r.Description},
		})
	}

	results := make([]Result, 0, len(findings))
	for _, f := range findings {
		loc := Location{
			PhysicalLocation: PhysicalLocation{
				ArtifactLocation: ArtifactLocation{URI: artifact},
			},
		}
		if f.Path != "" {
			loc.LogicalLocations = []LogicalLocation{{FullyQualifiedName: f.Path, Kind: "object"}}
		}

		results = append(results, Result{
			RuleID:    f.RuleID,
			Level:     string(validation.SeverityError),
			Message:   Message{Text: f.Message},
			Locations: []Location{loc},
		})
	}

	return &SARIF{
		Schema:  SARIFSchema,
		Version: SARIFVersion,
		Runs: []Run{{
			Tool: Tool{Driver: Driver{
				Name:           ToolName,
				InformationURI: ToolInformationURI,
				Version:        toolVersion,
				Rules:          rules,
			}},
			AutomationDetails: AutomationDetails{GUID: uuid.NewString()},
			Results:           results,
		}},
	}
}

// WriteSARIF writes the report as indented JSON
func WriteSARIF(path string, report *SARIF) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode SARIF report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write SARIF report to %s: %w", path, err)
	}
	return nil
}
