package validation

import (
	"github.com/nigelhorne/schema-validator/pkg/schema"
)

// Context is the per-run state threaded through validation: the active
// registry, whether dynamic checks are on, and the findings emitted so far.
// A Context is not safe for concurrent use.
type Context struct {
	Registry *schema.Registry
	Dynamic  bool

	findings []Finding
	passes   []Pass
}

// NewContext creates a context with an empty finding sequence
func NewContext(registry *schema.Registry, dynamic bool) *Context {
	if registry == nil {
		registry = schema.New()
	}
	return &Context{
		Registry: registry,
		Dynamic:  dynamic,
		findings: make([]Finding, 0),
	}
}

// Findings returns a copy of the findings in emission order
func (c *Context) Findings() []Finding {
	out := make([]Finding, len(c.findings))
	copy(out, c.findings)
	return out
}

// Passes returns a copy of the recorded passes in traversal order
func (c *Context) Passes() []Pass {
	out := make([]Pass, len(c.passes))
	copy(out, c.passes)
	return out
}

// Len returns the number of findings emitted so far
func (c *Context) Len() int {
	return len(c.findings)
}

func (c *Context) add(f Finding) {
	c.findings = append(c.findings, f)
}

func (c *Context) pass(typeName, path string) {
	c.passes = append(c.passes, Pass{Type: typeName, Path: path, After: len(c.findings)})
}
