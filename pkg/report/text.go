package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/nigelhorne/schema-validator/pkg/validation"
)

// WriteText renders findings one per line with pass notes interleaved in
// traversal order.
func WriteText(w io.Writer, findings []validation.Finding, passes []validation.Pass) error {
	next := 0
	for i, f := range findings {
		for next < len(passes) && passes[next].After <= i {
			if err := writePass(w, passes[next]); err != nil {
				return err
			}
			next++
		}
		if _, err := fmt.Fprintf(w, "  [%s] %s (at %s)\n", f.RuleID, f.Message, f.Path); err != nil {
			return err
		}
	}
	for ; next < len(passes); next++ {
		if err := writePass(w, passes[next]); err != nil {
			return err
		}
	}
	return nil
}

func writePass(w io.Writer, p validation.Pass) error {
	_, err := fmt.Fprintf(w, "✓ %s passed built-in checks (at %s)\n", p.Type, p.Path)
	return err
}

// WriteSummary prints the closing line of an interactive run
func WriteSummary(w io.Writer, findings []validation.Finding) error {
	if len(findings) == 0 {
		_, err := fmt.Fprintln(w, "✓ No problems found")
		return err
	}

	counts := make(map[string]int)
	for _, f := range findings {
		counts[f.RuleID]++
	}
	var parts []string
	for _, r := range catalogue {
		if n := counts[r.ID]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", r.ID, n))
			delete(counts, r.ID)
		}
	}
	rest := make([]string, 0, len(counts))
	for id := range counts {
		rest = append(rest, id)
	}
	sort.Strings(rest)
	for _, id := range rest {
		parts = append(parts, fmt.Sprintf("%s=%d", id, counts[id]))
	}

	_, err := fmt.Fprintf(w, "\n%d problem(s): %s\n", len(findings), strings.Join(parts, " "))
	return err
}

// WriteAnnotations prints GitHub Actions workflow commands so findings
// show up on the run summary.
func WriteAnnotations(w io.Writer, findings []validation.Finding, artifact string) error {
	for _, f := range findings {
		if _, err := fmt.Fprintf(w, "::%s file=%s::[%s] %s (at %s)\n",
			f.Severity, artifact, f.RuleID, f.Message, f.Path); err != nil {
			return err
		}
	}
	return nil
}
