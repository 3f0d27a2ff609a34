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

package calls

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wdamron/calls/symbols"
	"github.com/wdamron/calls/types"
)

const tracerName = "github.com/wdamron/calls"

func (r *Resolver) startSpan(rc *ResolutionContext, name string, attrs ...attribute.KeyValue) (*ResolutionContext, trace.Span) {
	ctx := rc.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := r.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	c := *rc
	c.Context = ctx
	return &c, span
}

func endSpan(span trace.Span, result Result) {
	kind := Classify(result)
	span.SetAttributes(
		attribute.String("calls.result", resultName(result)),
		attribute.String("calls.error_kind", kind.String()),
	)
	if kind != NoError {
		span.SetStatus(codes.Error, kind.String())
	}
	span.End()
}

func resultName(result Result) string {
	switch result.(type) {
	case *Success:
		return "success"
	case *NoneFound:
		return "none_found"
	case *ManyCandidates:
		return "many_candidates"
	case *AllCandidates:
		return "all_candidates"
	}
	return "unknown"
}

func symbolAttr(c symbols.Callable) slog.Attr {
	if c == nil {
		return slog.String("symbol", "<none>")
	}
	return slog.String("symbol", symbols.String(c))
}

func typeAttr(key string, t types.Type) slog.Attr {
	if t == nil {
		return slog.String(key, "<nil>")
	}
	return slog.String(key, types.TypeString(t))
}

func (r *Resolver) debug(rc *ResolutionContext, msg string, attrs ...slog.Attr) {
	ctx := rc.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if !r.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	r.logger.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}
