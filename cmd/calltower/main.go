// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// calltower resolves the call sites described by a scenario file and prints the selected
// candidates, the inferred types, and the diagnostics of each.
//
//	calltower scenarios.yaml
//	calltower -c settings.toml -a scenarios.yaml
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ComedicChimera/olive"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/wdamron/calls"
	"github.com/wdamron/calls/config"
	"github.com/wdamron/calls/exprcheck"
	"github.com/wdamron/calls/internal/scenario"
)

func main() {
	cli := olive.NewCLI("calltower", "calltower resolves the call sites of a scenario file", true)
	cli.AddPrimaryArg("scenarios", "the path to the scenario file", true)
	cli.AddStringArg("config", "c", "a YAML or TOML settings file applied to every scenario", false)
	cli.AddFlag("all", "a", "collect every candidate instead of selecting one")
	cli.AddFlag("verbose", "v", "log resolution steps to stderr")
	cli.AddFlag("no-color", "nc", "disable colored output")

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		printError("Usage Error", err)
		os.Exit(2)
	}
	if result.HasFlag("no-color") || !(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())) {
		pterm.DisableColor()
	}

	path, _ := result.PrimaryArg()
	scenarios, err := scenario.Load(path)
	if err != nil {
		printError("Scenario Error", err)
		os.Exit(1)
	}

	var settings *config.Settings
	if arg, ok := result.Arguments["config"]; ok {
		if settings, err = config.Load(arg.(string)); err != nil {
			printError("Config Error", err)
			os.Exit(1)
		}
	}

	var opts []calls.Option
	if result.HasFlag("verbose") {
		opts = append(opts, calls.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	}
	resolver := exprcheck.NewResolver(opts...)

	failed := 0
	for i, s := range scenarios {
		site, err := s.Build()
		if err != nil {
			printError("Scenario Error", fmt.Errorf("scenario %d (%s): %w", i+1, s.Name, err))
			failed++
			continue
		}
		if settings != nil {
			site.Tower.Settings = settings
		}
		if result.HasFlag("all") {
			all := *site.Tower.Settings
			all.CollectAllCandidates = true
			site.Tower.Settings = &all
		}
		out := site.Run(context.Background(), resolver)
		render(site, out)
		if out.Kind != calls.NoError {
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}
