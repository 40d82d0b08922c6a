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
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/erigontech/isoltest/common"
)

var (
	ConfigFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML (or .yaml) file with defaults for the flags below",
	}
	TestPathFlag = cli.StringFlag{
		Name:  "testpath",
		Usage: "path to test files",
	}
	IPCPathFlag = cli.StringFlag{
		Name:  "ipcpath",
		Usage: "path to ipc socket (or http url) of a node for the rpc backend",
	}
	BackendFlag = cli.StringFlag{
		Name:  "backend",
		Usage: "where contracts run: evm (in-process) or rpc",
		Value: "evm",
	}
	NoIPCFlag = cli.BoolFlag{
		Name:  "no-ipc",
		Usage: "never talk to a node, same as --backend=evm",
	}
	NoColorFlag = cli.BoolFlag{
		Name:  "no-color",
		Usage: "don't use colors",
	}
	EditorFlag = cli.StringFlag{
		Name:  "editor",
		Usage: "editor for opening contracts",
	}
	SolcFlag = cli.StringFlag{
		Name:  "solc",
		Usage: "solc binary used to compile test contracts",
		Value: "solc",
	}
	JobsFlag = cli.IntFlag{
		Name:  "jobs",
		Usage: "number of tests run in parallel, implies --batch when above 1",
		Value: 1,
	}
	BatchFlag = cli.BoolFlag{
		Name:  "batch",
		Usage: "report failures without asking what to do about them",
	}
	SkipFlag = cli.StringFlag{
		Name:  "skip",
		Usage: "comma separated regular expressions of test names to leave out",
	}
	MetricsAddrFlag = cli.StringFlag{
		Name:  "metrics.addr",
		Usage: "serve prometheus metrics on this address while running",
	}
)

// fileConfig mirrors the flags in a --config file.
type fileConfig struct {
	TestPath    string   `toml:"testpath" yaml:"testpath"`
	IPCPath     string   `toml:"ipcpath" yaml:"ipcpath"`
	Backend     string   `toml:"backend" yaml:"backend"`
	Editor      string   `toml:"editor" yaml:"editor"`
	Solc        string   `toml:"solc" yaml:"solc"`
	Jobs        int      `toml:"jobs" yaml:"jobs"`
	NoColor     bool     `toml:"no-color" yaml:"no-color"`
	Skip        []string `toml:"skip" yaml:"skip"`
	MetricsAddr string   `toml:"metrics-addr" yaml:"metrics-addr"`
}

type settings struct {
	TestPath    string
	IPCPath     string
	Backend     string
	Editor      string
	Solc        string
	Jobs        int
	Batch       bool
	Color       bool
	Skip        []*regexp.Regexp
	MetricsAddr string
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = toml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func defaultEditor() string {
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	if _, err := os.Stat("/usr/bin/editor"); err == nil {
		return "/usr/bin/editor"
	}
	return ""
}

// resolveSettings merges flags over the config file over built-in defaults.
func resolveSettings(ctx *cli.Context, colorCapable bool) (*settings, error) {
	var file fileConfig
	if path := ctx.String(ConfigFlag.Name); path != "" {
		var err error
		if file, err = loadFileConfig(path); err != nil {
			return nil, err
		}
	}

	str := func(flag cli.StringFlag, fromFile string) string {
		if !ctx.IsSet(flag.Name) && fromFile != "" {
			return fromFile
		}
		return ctx.String(flag.Name)
	}

	s := &settings{
		TestPath:    str(TestPathFlag, file.TestPath),
		IPCPath:     str(IPCPathFlag, file.IPCPath),
		Backend:     str(BackendFlag, file.Backend),
		Editor:      str(EditorFlag, file.Editor),
		Solc:        str(SolcFlag, file.Solc),
		MetricsAddr: str(MetricsAddrFlag, file.MetricsAddr),
		Jobs:        ctx.Int(JobsFlag.Name),
		Batch:       ctx.Bool(BatchFlag.Name),
		Color:       colorCapable && !ctx.Bool(NoColorFlag.Name) && !file.NoColor,
	}
	if !ctx.IsSet(JobsFlag.Name) && file.Jobs > 0 {
		s.Jobs = file.Jobs
	}
	if s.Jobs > 1 {
		s.Batch = true
	}
	if ctx.Bool(NoIPCFlag.Name) {
		s.Backend = "evm"
	}
	if s.Editor == "" {
		s.Editor = defaultEditor()
	}

	if s.TestPath == "" {
		return nil, fmt.Errorf("no test path specified, use --%s", TestPathFlag.Name)
	}
	switch s.Backend {
	case "evm":
	case "rpc":
		if s.IPCPath == "" {
			return nil, fmt.Errorf("--%s is required for the rpc backend", IPCPathFlag.Name)
		}
	default:
		return nil, fmt.Errorf("unknown backend %q", s.Backend)
	}

	patterns := file.Skip
	if ctx.IsSet(SkipFlag.Name) {
		patterns = common.SplitPatterns(ctx.String(SkipFlag.Name))
	}
	skip, err := common.CompileSkipPatterns(patterns)
	if err != nil {
		return nil, err
	}
	s.Skip = skip
	return s, nil
}
