// Copyright 2025 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

package semantics

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/erigontech/isoltest/compiler"
	"github.com/erigontech/isoltest/execution"
	"github.com/erigontech/isoltest/literal"
)

// CallError attributes a failure to a single call of the test.
type CallError struct {
	Call FunctionCall
	Err  error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("line %d, %s: %v", e.Call.Line, e.Call.Signature, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// Run compiles and deploys the contract, performs every call and records the
// obtained results. It reports whether all results match the expectations.
// Results are rendered with the layout of the expected result, so an
// unchanged expectation reproduces itself. A non-nil error means the test
// could not be carried out; Results are then incomplete.
func (t *Test) Run(ctx context.Context, c compiler.Compiler, e execution.Executor) (bool, error) {
	t.results = make([]FunctionCall, 0, len(t.Expectations))
	t.violations = nil

	code, err := c.Compile(ctx, t.Source)
	if err != nil {
		return false, fmt.Errorf("compiling: %w", err)
	}
	if err := e.Deploy(ctx, code); err != nil {
		return false, fmt.Errorf("deploying: %w", err)
	}

	success := true
	for _, call := range t.Expectations {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		obtained, matched, err := t.runCall(ctx, e, call)
		if err != nil {
			return false, &CallError{Call: call, Err: err}
		}
		t.results = append(t.results, obtained)
		success = success && matched
	}
	return success, nil
}

func (t *Test) runCall(ctx context.Context, e execution.Executor, call FunctionCall) (FunctionCall, bool, error) {
	args, _, err := literal.Encode(call.Arguments)
	if err != nil {
		return call, false, fmt.Errorf("arguments: %w", err)
	}
	var (
		want []byte
		tags literal.Tags
	)
	if !call.Reverted {
		if want, tags, err = literal.Encode(call.Result); err != nil {
			return call, false, fmt.Errorf("expected result: %w", err)
		}
	}

	obtained := call
	out, err := e.Call(ctx, call.Signature, args, call.Value)
	switch {
	case errors.Is(err, execution.ErrReverted):
		obtained.Result, obtained.Reverted = "", true
		return obtained, call.Reverted, nil
	case err != nil:
		return call, false, err
	}

	render := t.Render
	if render == nil {
		render = literal.RenderChecked
	}
	text, err := render(out, tags)
	if err != nil {
		t.violations = append(t.violations, &CallError{Call: call, Err: err})
	}
	obtained.Result, obtained.Reverted = text, false
	return obtained, !call.Reverted && bytes.Equal(out, want), nil
}
