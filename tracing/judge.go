package tracing

import (
	"context"

	"github.com/programme-lv/contest/judge"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type JudgeExecutor interface {
	Execute(ctx context.Context, lang judge.Lang, sourceCode string, stdin string) (judge.Result, error)
}

// JudgeTracer records a client span around every judge call.
type JudgeTracer struct {
	client JudgeExecutor
	tracer trace.Tracer
}

func NewJudgeTracer(client JudgeExecutor) *JudgeTracer {
	return &JudgeTracer{
		client: client,
		tracer: otel.Tracer("judge-client"),
	}
}

func (t *JudgeTracer) Execute(ctx context.Context, lang judge.Lang, sourceCode string, stdin string) (judge.Result, error) {
	ctx, span := t.tracer.Start(ctx, "judge.Execute", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("judge.language", lang.Name),
		attribute.String("judge.version", lang.Version),
		attribute.Int("judge.source_bytes", len(sourceCode)),
		attribute.Int("judge.stdin_bytes", len(stdin)),
	)

	res, err := t.client.Execute(ctx, lang, sourceCode, stdin)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}

	span.SetAttributes(
		attribute.Int("judge.stdout_bytes", len(res.Stdout)),
		attribute.Bool("judge.stderr", res.Stderr != ""),
	)
	return res, nil
}
