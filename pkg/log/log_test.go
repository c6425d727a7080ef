package log_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/macropower/folio/pkg/log"
)

func TestCreateHandlerWithStrings(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level, format string
		contains      string
		err           error
	}{
		"json":           {level: "info", format: "json", contains: `"msg":"hello"`},
		"logfmt":         {level: "debug", format: "LOGFMT", contains: "msg=hello"},
		"text":           {level: "warning", format: "text"},
		"unknown level":  {level: "loud", format: "json", err: log.ErrUnknownLogLevel},
		"unknown format": {level: "info", format: "xml", err: log.ErrUnknownLogFormat},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			h, err := log.CreateHandlerWithStrings(&buf, tc.level, tc.format)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				require.ErrorIs(t, err, log.ErrInvalidArgument)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, h)

			if tc.contains != "" {
				slog.New(h).Info("hello")
				assert.Contains(t, buf.String(), tc.contains)
			}
		})
	}
}

func TestWithContext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Default(), log.WithContext(context.Background()))

	custom := slog.New(slog.DiscardHandler)
	ctx := log.NewContext(context.Background(), custom)
	assert.Same(t, custom, log.WithContext(ctx))

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "span")
	defer span.End()

	assert.NotEqual(t, slog.Default(), log.WithContext(ctx))
}
