// Package check compares a rendered table against an expected transcript.
package check

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Result describes one comparison. Diff is empty when the outputs match.
type Result struct {
	Name string
	Diff string
}

// OK reports whether the comparison found no differences.
func (r Result) OK() bool {
	return r.Diff == ""
}

// Compare diffs want against got, ignoring trailing whitespace on each line
// and a missing final newline.
func Compare(name, want, got string) (Result, error) {
	want = normalize(want)
	got = normalize(got)
	if want == got {
		return Result{Name: name}, nil
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: name + " (expected)",
		ToFile:   name + " (actual)",
		Context:  3,
	}
	diff, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return Result{}, fmt.Errorf("diff %s: %w", name, err)
	}
	return Result{Name: name, Diff: diff}, nil
}

func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n") + "\n"
}
