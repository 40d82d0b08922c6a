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

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/ledgerwatch/log/v3"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/erigontech/isoltest/common"
	"github.com/erigontech/isoltest/compiler"
	"github.com/erigontech/isoltest/execution"
	"github.com/erigontech/isoltest/execution/evm"
	"github.com/erigontech/isoltest/execution/rpc"
	"github.com/erigontech/isoltest/runner"
	"github.com/erigontech/isoltest/turbo/logging"
)

func main() {
	app := cli.NewApp()
	app.Name = "isoltest"
	app.Usage = "tool for interactively managing test contracts"
	app.UsageText = app.Name + ` [flags] --testpath path [subpath]`
	app.Description = `Runs the semantic tests below the test path, compares the obtained
results with the expectations in each file and, unless --batch is given,
asks what to do about every failing test.`

	app.Flags = append([]cli.Flag{
		&ConfigFlag,
		&TestPathFlag,
		&IPCPathFlag,
		&BackendFlag,
		&NoIPCFlag,
		&NoColorFlag,
		&EditorFlag,
		&SolcFlag,
		&JobsFlag,
		&BatchFlag,
		&SkipFlag,
		&MetricsAddrFlag,
	}, logging.Flags...)
	app.Action = runTests

	if err := app.Run(os.Args); err != nil {
		var exit cli.ExitCoder
		if errors.As(err, &exit) {
			os.Exit(exit.ExitCode())
		}
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runTests(cliCtx *cli.Context) error {
	logger := logging.SetupLoggerCtx("isoltest", cliCtx)

	stdout := os.Stdout
	colorCapable := isatty.IsTerminal(stdout.Fd()) || isatty.IsCygwinTerminal(stdout.Fd())
	s, err := resolveSettings(cliCtx, colorCapable)
	if err != nil {
		return err
	}

	ctx, cancel := common.RootContext(logger)
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := runner.NewMetrics(reg)
	if s.MetricsAddr != "" {
		srv := serveMetrics(s.MetricsAddr, reg, logger)
		defer func() {
			shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
			defer stop()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	var executors execution.Factory
	switch s.Backend {
	case "rpc":
		executors = rpc.NewFactory(rpc.DefaultConfig(s.IPCPath), log.New("component", "rpc"))
	default:
		executors = evm.NewFactory(evm.DefaultConfig(), log.New("component", "evm"))
	}

	solc, err := compiler.NewCached(compiler.NewSolc(s.Solc, log.New("component", "solc")), 256, log.New("component", "compiler"))
	if err != nil {
		return err
	}

	cfg := runner.Config{
		Fs:        afero.NewOsFs(),
		Compiler:  solc,
		Executors: executors,
		Out:       colorable.NewColorable(stdout),
		Editor:    s.Editor,
		Color:     s.Color,
		Jobs:      s.Jobs,
		Skip:      s.Skip,
		Metrics:   metrics,
		Logger:    logger,
	}
	if !s.Batch {
		cfg.Input = runner.NewTerminalInput(os.Stdin)
	}
	r := runner.New(cfg)

	path := "."
	if cliCtx.Args().Present() {
		path = cliCtx.Args().First()
	}
	stats, err := r.ProcessPath(ctx, s.TestPath, path)
	r.PrintSummary(stats)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if !stats.Ok() {
		return cli.Exit("", 1)
	}
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry, logger log.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server stopped", "addr", addr, "err", err)
		}
	}()
	logger.Info("serving metrics", "addr", addr)
	return srv
}
