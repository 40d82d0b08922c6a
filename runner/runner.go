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


// Package runner drives semantic tests: it discovers test files, runs them
// against a compiler and an executor, reports results and, in interactive
// mode, lets the user edit, update or skip failing tests.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/ledgerwatch/log/v3"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/erigontech/isoltest/common/dir"
	"github.com/erigontech/isoltest/compiler"
	"github.com/erigontech/isoltest/execution"
	"github.com/erigontech/isoltest/literal"
)

var errNoEditor = errors.New("no editor configured")

type Config struct {
	Fs        afero.Fs
	Compiler  compiler.Compiler
	Executors execution.Factory
	Out       io.Writer
	// Input enables the interactive prompt. Without it tests run in batch
	// mode.
	Input   Input
	Editor  string
	Color   bool
	Jobs    int
	Skip    []*regexp.Regexp
	Metrics *Metrics
	Logger  log.Logger
}

type Runner struct {
	fs        afero.Fs
	compiler  compiler.Compiler
	executors execution.Factory
	out       io.Writer
	input     Input
	editor    string
	jobs      int
	skip      []*regexp.Regexp
	metrics   *Metrics
	logger    log.Logger
	fmt       formatter
	// render overrides how tests turn return data into literals.
	render func(data []byte, tags literal.Tags) (string, error)
}

func New(cfg Config) *Runner {
	r := &Runner{
		fs:        cfg.Fs,
		compiler:  cfg.Compiler,
		executors: cfg.Executors,
		out:       cfg.Out,
		input:     cfg.Input,
		editor:    cfg.Editor,
		jobs:      cfg.Jobs,
		skip:      cfg.Skip,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
		fmt:       newFormatter(cfg.Color),
	}
	if r.fs == nil {
		r.fs = afero.NewOsFs()
	}
	if r.jobs < 1 {
		r.jobs = 1
	}
	if r.logger == nil {
		r.logger = log.New()
	}
	return r
}

type FailedTest struct {
	Name   string
	Result Result
	Detail string
}

type Stats struct {
	SuccessCount int
	RunCount     int
	Failed       []FailedTest
}

func (s Stats) Ok() bool { return s.SuccessCount == s.RunCount }

func (s *Stats) add(o Stats) {
	s.SuccessCount += o.SuccessCount
	s.RunCount += o.RunCount
	s.Failed = append(s.Failed, o.Failed...)
}

func isTestFilename(name string) bool {
	return filepath.Ext(name) == ".sol" &&
		!strings.HasPrefix(name, "~") &&
		!strings.HasPrefix(name, ".")
}

func (r *Runner) skipped(name string) bool {
	for _, re := range r.skip {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// Collect lists the tests below basePath/path breadth first. Names are
// relative to basePath.
func (r *Runner) Collect(basePath, path string) ([]string, error) {
	root := filepath.Join(basePath, path)
	if ok, err := dir.Exist(r.fs, root); err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("test path %q does not exist", root)
	}
	if !dir.IsDir(r.fs, root) {
		if ok, err := dir.FileExist(r.fs, root); err != nil {
			return nil, err
		} else if !ok {
			return nil, fmt.Errorf("test path %q is not a regular file", root)
		}
		if r.skipped(path) {
			return nil, nil
		}
		return []string{path}, nil
	}

	queue := []string{path}
	var tests []string
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		full := filepath.Join(basePath, current)
		files, err := dir.ListFiles(r.fs, full, ".sol")
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			name := filepath.Join(current, filepath.Base(f))
			if isTestFilename(filepath.Base(f)) && !r.skipped(name) {
				tests = append(tests, name)
			}
		}
		entries, err := dir.ReadDir(r.fs, full)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				queue = append(queue, filepath.Join(current, e.Name()))
			}
		}
	}
	return tests, nil
}

// ProcessPath runs every test below basePath/path, interactively if the
// runner has an Input.
func (r *Runner) ProcessPath(ctx context.Context, basePath, path string) (Stats, error) {
	tests, err := r.Collect(basePath, path)
	if err != nil {
		return Stats{}, err
	}
	r.logger.Info("tests collected", "path", filepath.Join(basePath, path), "count", len(tests), "jobs", r.jobs)
	if r.input != nil {
		return r.interactive(ctx, basePath, tests)
	}
	return r.batch(ctx, basePath, tests)
}

func (r *Runner) interactive(ctx context.Context, basePath string, tests []string) (Stats, error) {
	var stats Stats
	for i := 0; i < len(tests); {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		tool := newTestTool(r, tests[i], filepath.Join(basePath, tests[i]))
		stats.RunCount++
		res := tool.Process(ctx, r.out)
		if res == Success {
			stats.SuccessCount++
			i++
			continue
		}
		req, err := tool.HandleResponse(res)
		switch req {
		case Quit:
			stats.Failed = append(stats.Failed, FailedTest{tests[i], res, tool.detail})
			return stats, err
		case Rerun:
			fmt.Fprintln(r.out, "Re-running test case...")
			stats.RunCount--
		case Skip:
			stats.Failed = append(stats.Failed, FailedTest{tests[i], res, tool.detail})
			i++
		}
	}
	return stats, nil
}

func (r *Runner) batch(ctx context.Context, basePath string, tests []string) (Stats, error) {
	var (
		mu    sync.Mutex
		stats Stats
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)
	for _, name := range tests {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var buf bytes.Buffer
			tool := newTestTool(r, name, filepath.Join(basePath, name))
			res := tool.Process(ctx, &buf)

			mu.Lock()
			defer mu.Unlock()
			if _, err := r.out.Write(buf.Bytes()); err != nil {
				return err
			}
			one := Stats{RunCount: 1}
			if res == Success {
				one.SuccessCount = 1
			} else {
				one.Failed = []FailedTest{{name, res, tool.detail}}
			}
			stats.add(one)
			return nil
		})
	}
	err := g.Wait()
	return stats, err
}

// PrintSummary writes the success count and a table of failed tests.
func (r *Runner) PrintSummary(stats Stats) {
	fmt.Fprintln(r.out)
	line := fmt.Sprintf("%d/%d tests successful.", stats.SuccessCount, stats.RunCount)
	if stats.Ok() {
		fmt.Fprintln(r.out, "Summary: "+r.fmt.boldGreen(line))
		return
	}
	fmt.Fprintln(r.out, "Summary: "+r.fmt.boldRed(line))
	if len(stats.Failed) == 0 {
		return
	}

	internal := 0
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Test", "Result", "Detail"})
	for _, f := range stats.Failed {
		if f.Result == InternalError {
			internal++
		}
		tw.AppendRow(table.Row{f.Name, f.Result, truncate(f.Detail, 80)})
	}
	fmt.Fprintln(r.out, tw.Render())
	if internal > 0 {
		fmt.Fprintln(r.out, r.fmt.boldYellow(fmt.Sprintf("%d test(s) hit literal round-trip violations.", internal)))
	}
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
