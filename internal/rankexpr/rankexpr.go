// Package rankexpr compiles JavaScript ranking expressions (goja) into
// dispatch predicates for the ranked scheduling policies.
//
// An expression sees two processes, a and b, and must evaluate to true when a
// should run before b:
//
//	a.priority < b.priority || (a.priority == b.priority && a.remaining < b.remaining)
//
// Each process exposes pid, arrival, burst, priority, remaining, timeRan and start.
package rankexpr

import (
	"fmt"
	"strings"
	"time"

	"github.com/dop251/goja"
	"github.com/me/schedsim/pkg/model"
)

// DefaultTimeout bounds a single evaluation of an expression.
const DefaultTimeout = 100 * time.Millisecond

// Expr is a compiled ranking expression bound to its own JavaScript runtime.
// An Expr is not safe for concurrent use; compile one per simulation.
type Expr struct {
	src     string
	vm      *goja.Runtime
	fn      goja.Callable
	timeout time.Duration
	err     error
}

// Compile parses src and checks it against a sample pair of processes.
// Syntax and evaluation problems are returned as VALIDATION_ERROR APIErrors
// on the "expr" field.
func Compile(src string) (*Expr, error) {
	if strings.TrimSpace(src) == "" {
		return nil, invalid("must not be empty")
	}

	prog, err := goja.Compile("rank", "(function (a, b) { return (\n"+src+"\n); })", true)
	if err != nil {
		return nil, invalid(err.Error())
	}
	vm := goja.New()
	val, err := vm.RunProgram(prog)
	if err != nil {
		return nil, invalid(err.Error())
	}
	fn, ok := goja.AssertFunction(val)
	if !ok {
		return nil, invalid("expression did not compile to a function")
	}

	e := &Expr{src: src, vm: vm, fn: fn, timeout: DefaultTimeout}

	// Reference errors such as a typo in a field name only show up when the
	// expression runs, so run it once before any simulation does.
	probe := model.NewExecution(model.Process{PID: 0, Burst: 1})
	e.Rank(probe, probe)
	if e.err != nil {
		return nil, e.err
	}
	return e, nil
}

// Source returns the expression text.
func (e *Expr) Source() string {
	return e.src
}

// Rank evaluates the expression for (a, b). After the first failure every
// call returns false and Err reports the failure.
func (e *Expr) Rank(a, b *model.Execution) bool {
	if e.err != nil {
		return false
	}

	fired := make(chan struct{})
	timer := time.AfterFunc(e.timeout, func() {
		e.vm.Interrupt("ranking expression timed out")
		close(fired)
	})
	val, err := e.fn(goja.Undefined(), e.vm.ToValue(view(a)), e.vm.ToValue(view(b)))
	// A timer that already fired must finish interrupting before the clear,
	// or the interrupt lands on the next evaluation.
	if !timer.Stop() {
		<-fired
	}
	e.vm.ClearInterrupt()

	if err != nil {
		e.err = invalid(fmt.Sprintf("evaluating for pids %d and %d: %v", a.Process.PID, b.Process.PID, err))
		return false
	}
	return val.ToBoolean()
}

// Err returns the first evaluation error, if any.
func (e *Expr) Err() error {
	return e.err
}

func view(x *model.Execution) map[string]any {
	return map[string]any{
		"pid":       x.Process.PID,
		"arrival":   x.Process.Arrival,
		"burst":     x.Process.Burst,
		"priority":  x.Process.Priority,
		"remaining": x.Remaining(),
		"timeRan":   x.TimeRan,
		"start":     x.Start,
	}
}

func invalid(msg string) error {
	return model.NewValidationError("invalid ranking expression",
		model.FieldError{Field: "expr", Message: msg})
}
