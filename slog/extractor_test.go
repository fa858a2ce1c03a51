package slog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/fwojciec/webtab"
	"github.com/fwojciec/webtab/mock"
	webtabslog "github.com/fwojciec/webtab/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs extract with status, bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(ctx context.Context, urls []string, params webtab.ExtractParams) (*webtab.ExtractResult, error) {
				return &webtab.ExtractResult{
					Data:   json.RawMessage(`[{"a":1}]`),
					Raw:    json.RawMessage(`{"success":true}`),
					Status: "completed",
				}, nil
			},
		}

		extractor := webtabslog.NewLoggingExtractor(inner, logger)
		result, err := extractor.Extract(context.Background(), []string{"https://example.com"},
			webtab.ExtractParams{Prompt: "list the products"})

		require.NoError(t, err)
		assert.JSONEq(t, `[{"a":1}]`, string(result.Data))
		output := buf.String()
		assert.Contains(t, output, "extract")
		assert.Contains(t, output, "urls=1")
		assert.Contains(t, output, "schema=false")
		assert.Contains(t, output, "status=completed")
		assert.Contains(t, output, "bytes=16")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs schema presence", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(ctx context.Context, urls []string, params webtab.ExtractParams) (*webtab.ExtractResult, error) {
				return &webtab.ExtractResult{Raw: json.RawMessage(`{}`)}, nil
			},
		}
		schema, err := webtab.BuildSchema([]webtab.SchemaField{{Name: "price", Type: webtab.FieldFloat}})
		require.NoError(t, err)

		extractor := webtabslog.NewLoggingExtractor(inner, logger)
		_, err = extractor.Extract(context.Background(), []string{"https://example.com"},
			webtab.ExtractParams{Prompt: "prices", Schema: schema})

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "schema=true")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(ctx context.Context, urls []string, params webtab.ExtractParams) (*webtab.ExtractResult, error) {
				return nil, webtab.Errorf(webtab.EUNAVAILABLE, "quota exceeded")
			},
		}

		extractor := webtabslog.NewLoggingExtractor(inner, logger)
		_, err := extractor.Extract(context.Background(), []string{"https://example.com"},
			webtab.ExtractParams{Prompt: "anything"})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "extract")
		assert.Contains(t, output, "quota exceeded")
	})
}
