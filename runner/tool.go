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

package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/erigontech/isoltest/literal"
	"github.com/erigontech/isoltest/semantics"
)

// TestTool processes a single test file.
type TestTool struct {
	name string
	path string
	r    *Runner
	test *semantics.Test
	// detail summarises the last non-successful result.
	detail string
}

func newTestTool(r *Runner, name, path string) *TestTool {
	return &TestTool{name: name, path: path, r: r}
}

// Process loads and runs the test, writing the verdict and, on failure, the
// contract and both result lists to out.
func (t *TestTool) Process(ctx context.Context, out io.Writer) Result {
	start := time.Now()
	res := t.process(ctx, out)
	t.r.metrics.observe(res, time.Since(start))
	t.r.logger.Debug("test processed", "test", t.name, "result", res, "took", time.Since(start))
	return res
}

func (t *TestTool) process(ctx context.Context, out io.Writer) Result {
	f := t.r.fmt
	fmt.Fprint(out, f.bold(t.name+": "))

	t.detail = ""
	test, err := semantics.Load(t.r.fs, t.path)
	if err != nil {
		return t.exception(out, err)
	}
	test.Render = t.r.render
	t.test = test

	executor, err := t.r.executors(ctx)
	if err != nil {
		return t.exception(out, err)
	}
	defer executor.Close()

	ok, err := test.Run(ctx, t.r.compiler, executor)
	if err != nil {
		return t.exception(out, err)
	}

	if violations := test.Violations(); len(violations) > 0 {
		fmt.Fprintln(out, f.boldRed("InternalError"))
		for _, v := range violations {
			fmt.Fprintln(out, f.boldRed("  "+v.Error()))
		}
		t.detail = violations[0].Error()
		t.printResults(out)
		return InternalError
	}
	if ok {
		fmt.Fprintln(out, f.boldGreen("OK"))
		return Success
	}

	fmt.Fprintln(out, f.boldRed("FAIL"))
	fmt.Fprintln(out, f.boldCyan("  Contract:"))
	t.printContract(out)
	t.printResults(out)
	t.detail = t.firstMismatch()
	return Failure
}

func (t *TestTool) exception(out io.Writer, err error) Result {
	fmt.Fprintln(out, t.r.fmt.boldRed("Exception: "+err.Error()))
	t.detail = err.Error()
	return Exception
}

func (t *TestTool) printContract(out io.Writer) {
	sc := bufio.NewScanner(strings.NewReader(t.test.Source))
	for sc.Scan() {
		fmt.Fprintln(out, "    "+sc.Text())
	}
	fmt.Fprintln(out)
}

func (t *TestTool) printResults(out io.Writer) {
	fmt.Fprintln(out, t.r.fmt.boldCyan("  Expected result:"))
	fmt.Fprint(out, semantics.FormatCalls(t.test.Expectations, "    "))
	fmt.Fprintln(out, t.r.fmt.boldCyan("  Obtained result:"))
	fmt.Fprint(out, semantics.FormatCalls(t.test.Results(), "    "))
	fmt.Fprintln(out)
}

func (t *TestTool) firstMismatch() string {
	results := t.test.Results()
	for i, want := range t.test.Expectations {
		if i >= len(results) {
			break
		}
		got := results[i]
		if got.Reverted != want.Reverted || (!got.Reverted && !sameLiterals(got.Result, want.Result)) {
			return fmt.Sprintf("%s: %s", want.Signature, strings.TrimSpace(semantics.FormatCalls([]semantics.FunctionCall{got}, "")))
		}
	}
	return ""
}

// sameLiterals compares two result lists by their encoding, so differently
// formatted but equivalent results do not count as a mismatch.
func sameLiterals(a, b string) bool {
	eq, err := literal.Equal(a, b)
	return err == nil && eq
}

// HandleResponse asks what to do about a test that did not succeed.
// Updating expectations is only offered for plain failures.
func (t *TestTool) HandleResponse(res Result) (Request, error) {
	out := t.r.out
	canUpdate := res == Failure && t.test != nil
	if canUpdate {
		fmt.Fprint(out, "(e)dit/(u)pdate expectations/(s)kip/(q)uit? ")
	} else {
		fmt.Fprint(out, "(e)dit/(s)kip/(q)uit? ")
	}

	for {
		c, err := t.r.input.ReadChar()
		if err != nil {
			fmt.Fprintln(out)
			if errors.Is(err, io.EOF) {
				return Quit, nil
			}
			return Quit, err
		}
		switch c {
		case 's':
			fmt.Fprintln(out)
			return Skip, nil
		case 'u':
			if !canUpdate {
				continue
			}
			fmt.Fprintln(out)
			if err := t.test.UpdateExpectations(t.r.fs); err != nil {
				return Quit, err
			}
			return Rerun, nil
		case 'e':
			fmt.Fprint(out, "\n\n")
			if err := t.edit(); err != nil {
				t.r.logger.Warn("editor failed", "editor", t.r.editor, "err", err)
				fmt.Fprint(out, "Error running editor command.\n\n")
			}
			return Rerun, nil
		case 'q':
			fmt.Fprintln(out)
			return Quit, nil
		}
	}
}

func (t *TestTool) edit() error {
	if t.r.editor == "" {
		return errNoEditor
	}
	fields := strings.Fields(t.r.editor)
	cmd := exec.Command(fields[0], append(fields[1:], t.path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
