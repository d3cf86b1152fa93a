// Package expression evaluates dataset filter expressions such as
// "status == 'noncompliant' && riskScore > 70" against individual records.
// It wraps expr-lang with a compiled-program cache and a small set of
// dashboard helper functions.
package expression

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Engine is a wrapper around expr-lang/expr
type Engine struct {
	programCache map[string]*vm.Program
	mu           sync.RWMutex
}

// NewEngine creates a new expression engine
func NewEngine() *Engine {
	return &Engine{
		programCache: make(map[string]*vm.Program),
	}
}

// Evaluate compiles (if needed) and runs an expression against the given
// record environment
func (e *Engine) Evaluate(expression string, env map[string]interface{}) (interface{}, error) {
	program, err := e.getProgram(expression)
	if err != nil {
		return nil, err
	}

	output, err := expr.Run(program, env)
	if err != nil {
		return nil, err
	}
	return output, nil
}

// EvaluateBool runs a predicate expression and coerces the result to a
// boolean. A nil result is false; any non-boolean result is an error.
func (e *Engine) EvaluateBool(expression string, env map[string]interface{}) (bool, error) {
	output, err := e.Evaluate(expression, env)
	if err != nil {
		return false, err
	}
	if output == nil {
		return false, nil
	}
	b, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("expression did not evaluate to a boolean (got %T)", output)
	}
	return b, nil
}

// Validate checks that an expression compiles
func (e *Engine) Validate(expression string) error {
	_, err := e.getProgram(expression)
	return err
}

func (e *Engine) getProgram(expression string) (*vm.Program, error) {
	e.mu.RLock()
	if prog, ok := e.programCache[expression]; ok {
		e.mu.RUnlock()
		return prog, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	// Double check
	if prog, ok := e.programCache[expression]; ok {
		return prog, nil
	}

	// Records are heterogeneous maps, so fields are dynamically typed and
	// absent fields must evaluate to nil rather than fail compilation.
	options := []expr.Option{
		expr.Env(map[string]interface{}{}),
		expr.AllowUndefinedVariables(),
		expr.Function("TODAY", func(params ...interface{}) (interface{}, error) {
			return time.Now().Format("2006-01-02"), nil
		}),
		expr.Function("NOW", func(params ...interface{}) (interface{}, error) {
			return time.Now().Format("2006-01-02 15:04:05"), nil
		}),
		expr.Function("LEN", func(params ...interface{}) (interface{}, error) {
			if len(params) != 1 {
				return nil, fmt.Errorf("LEN requires 1 argument")
			}
			s, ok := params[0].(string)
			if !ok {
				return nil, fmt.Errorf("LEN argument must be string")
			}
			return len(s), nil
		}),
		expr.Function("UPPER", func(params ...interface{}) (interface{}, error) {
			if len(params) != 1 {
				return nil, fmt.Errorf("UPPER requires 1 argument")
			}
			s, ok := params[0].(string)
			if !ok {
				return nil, fmt.Errorf("UPPER argument must be string")
			}
			return strings.ToUpper(s), nil
		}),
		expr.Function("LOWER", func(params ...interface{}) (interface{}, error) {
			if len(params) != 1 {
				return nil, fmt.Errorf("LOWER requires 1 argument")
			}
			s, ok := params[0].(string)
			if !ok {
				return nil, fmt.Errorf("LOWER argument must be string")
			}
			return strings.ToLower(s), nil
		}),
		expr.Function("CONTAINS", func(params ...interface{}) (interface{}, error) {
			a, b, err := twoStrings("CONTAINS", params)
			if err != nil {
				return nil, err
			}
			return strings.Contains(strings.ToLower(a), strings.ToLower(b)), nil
		}),
		expr.Function("STARTS_WITH", func(params ...interface{}) (interface{}, error) {
			a, b, err := twoStrings("STARTS_WITH", params)
			if err != nil {
				return nil, err
			}
			return strings.HasPrefix(strings.ToLower(a), strings.ToLower(b)), nil
		}),
		expr.Function("ENDS_WITH", func(params ...interface{}) (interface{}, error) {
			a, b, err := twoStrings("ENDS_WITH", params)
			if err != nil {
				return nil, err
			}
			return strings.HasSuffix(strings.ToLower(a), strings.ToLower(b)), nil
		}),
		expr.Function("IF", func(params ...interface{}) (interface{}, error) {
			if len(params) != 3 {
				return nil, fmt.Errorf("IF requires 3 arguments (condition, true_value, false_value)")
			}
			cond, ok := params[0].(bool)
			if !ok {
				return nil, fmt.Errorf("IF condition must be boolean")
			}
			if cond {
				return params[1], nil
			}
			return params[2], nil
		}),
	}

	// Compile
	program, err := expr.Compile(expression, options...)
	if err != nil {
		return nil, err
	}

	e.programCache[expression] = program
	return program, nil
}

// twoStrings validates a two-string argument list. Nil arguments (absent
// record fields) are treated as empty strings so predicates over sparse
// records don't error out row by row.
func twoStrings(fn string, params []interface{}) (string, string, error) {
	if len(params) != 2 {
		return "", "", fmt.Errorf("%s requires 2 arguments", fn)
	}
	a, err := nilableString(fn, params[0])
	if err != nil {
		return "", "", err
	}
	b, err := nilableString(fn, params[1])
	if err != nil {
		return "", "", err
	}
	return a, b, nil
}

func nilableString(fn string, v interface{}) (string, error) {
	if v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s arguments must be strings", fn)
	}
	return s, nil
}
