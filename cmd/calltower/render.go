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

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"github.com/wdamron/calls"
	"github.com/wdamron/calls/ast"
	"github.com/wdamron/calls/diag"
	"github.com/wdamron/calls/internal/scenario"
	"github.com/wdamron/calls/symbols"
	"github.com/wdamron/calls/types"
)

var (
	okColorFG    = pterm.FgLightGreen
	okStyleBG    = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	warnColorFG  = pterm.FgYellow
	warnStyleBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	errorColorFG = pterm.FgRed
	errorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
)

func printError(tag string, err error) {
	errorStyleBG.Print(tag)
	errorColorFG.Println(" " + err.Error())
}

func render(site *scenario.Site, out *scenario.Outcome) {
	fmt.Println()
	if out.Kind == calls.NoError {
		okStyleBG.Print(" " + site.Name + " ")
	} else {
		errorStyleBG.Print(" " + site.Name + " ")
	}
	fmt.Println(" " + ast.ExprString(site.Expr))

	field("type", types.TypeString(out.Type))
	if out.Result != nil {
		field("result", out.Kind.String())
	}
	switch res := out.Result.(type) {
	case *calls.Success:
		renderCandidate(res.Candidate, res.Call)
	case *calls.ManyCandidates:
		renderCandidates(res.Candidates)
	case *calls.AllCandidates:
		renderCandidates(res.Candidates)
	}

	for _, d := range out.Diagnostics() {
		if d.Severity() == diag.Error {
			errorColorFG.Println("  " + d.String())
		} else {
			warnColorFG.Println("  " + d.String())
		}
	}
}

func field(name, value string) {
	okColorFG.Print(fmt.Sprintf("  %-10s", name))
	fmt.Println(value)
}

func renderCandidate(c *calls.Candidate, call *calls.ResolvedCall) {
	field("symbol", symbols.String(c.Symbol))
	if call == nil {
		warnStyleBG.Println(" not completed ")
		return
	}
	field("receiver", call.ReceiverKind.String())
	if len(call.TypeArguments) > 0 {
		field("type args", types.TypeListString(call.TypeArguments))
	}
	field("returns", types.TypeString(call.ReturnType))

	var mapped []string
	for arg, p := range call.ArgumentMap() {
		mapped = append(mapped, p.Name+" = "+ast.ExprString(arg.Info().Node))
	}
	sort.Strings(mapped)
	if len(mapped) > 0 {
		field("arguments", strings.Join(mapped, ", "))
	}
	params := make([]int, 0, len(call.Invocations))
	for param := range call.Invocations {
		params = append(params, param)
	}
	sort.Ints(params)
	for _, param := range params {
		field("contract", fmt.Sprintf("parameter %d is invoked %s", param, call.Invocations[param]))
	}
}

func renderCandidates(cands []*calls.Candidate) {
	data := pterm.TableData{{"candidate", "applicability", "returns", "diagnostics"}}
	for _, c := range cands {
		var ds []string
		for _, d := range c.Diagnostics {
			ds = append(ds, d.Kind.String())
		}
		data = append(data, []string{
			symbols.String(c.Symbol),
			c.Applicability().String(),
			types.TypeString(c.ReturnType),
			strings.Join(ds, ", "),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		printError("Render Error", err)
	}
}
