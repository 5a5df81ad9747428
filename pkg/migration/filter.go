package migration

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter selects records with a boolean expression over the fields
// type, status, source_count, target_count, source_path, target_path and
// description, for example:
//
//	status == "Fail" && type in ["collection", "folder"]
type Filter struct {
	expression string
	program    *vm.Program
}

func filterEnv(r Record) map[string]interface{} {
	return map[string]interface{}{
		"type":         string(r.Type),
		"status":       string(r.Status),
		"source_count": r.SourceCount,
		"target_count": r.TargetCount,
		"source_path":  r.SourcePath,
		"target_path":  r.TargetPath,
		"description":  r.Description,
	}
}

// NewFilter compiles expression. An empty expression yields a nil filter,
// which matches every record.
func NewFilter(expression string) (*Filter, error) {
	if expression == "" {
		return nil, nil
	}
	program, err := expr.Compile(expression, expr.Env(filterEnv(Record{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expression, err)
	}
	return &Filter{expression: expression, program: program}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.expression
}

// Match reports whether r satisfies the filter.
func (f *Filter) Match(r Record) (bool, error) {
	if f == nil {
		return true, nil
	}
	out, err := expr.Run(f.program, filterEnv(r))
	if err != nil {
		return false, fmt.Errorf("eval %q: %w", f.expression, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

// Apply returns the matching records in order.
func (f *Filter) Apply(records []Record) ([]Record, error) {
	if f == nil {
		return records, nil
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		ok, err := f.Match(r)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}
