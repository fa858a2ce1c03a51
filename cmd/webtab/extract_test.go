package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fwojciec/webtab"
	main "github.com/fwojciec/webtab/cmd/webtab"
	"github.com/fwojciec/webtab/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the rendered table", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(_ context.Context, urls []string, params webtab.ExtractParams) (*webtab.ExtractResult, error) {
				assert.Equal(t, []string{"https://example.com"}, urls)
				assert.Equal(t, "list the products", params.Prompt)
				require.NotNil(t, params.Schema)
				assert.Equal(t, []webtab.SchemaProperty{
					{Name: "name", Type: "string"},
					{Name: "price", Type: "number"},
				}, params.Schema.Properties)
				return &webtab.ExtractResult{
					Data: json.RawMessage(`[{"name":"x","price":5}]`),
					Raw:  json.RawMessage(`{"success":true}`),
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Extractor: extractor,
		}

		cmd := &main.ExtractCmd{
			URL:    "https://example.com",
			Prompt: "list the products",
			Field:  []string{"name", "price:float"},
		}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "| name | price |")
		assert.Contains(t, stdout.String(), "| x    | 5     |")
	})

	t.Run("renders extraction failure as an inline error", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(_ context.Context, urls []string, params webtab.ExtractParams) (*webtab.ExtractResult, error) {
				return nil, webtab.Errorf(webtab.EUNAVAILABLE, "quota exceeded")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Extractor: extractor,
		}

		cmd := &main.ExtractCmd{URL: "https://example.com", Prompt: "anything"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: quota exceeded")
	})

	t.Run("rejects bad field specs before any request", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(_ context.Context, urls []string, params webtab.ExtractParams) (*webtab.ExtractResult, error) {
				t.Fatal("extractor should not be called")
				return nil, nil
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Extractor: extractor,
		}

		cmd := &main.ExtractCmd{
			URL:    "https://example.com",
			Prompt: "anything",
			Field:  []string{"price:decimal"},
		}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, webtab.EINVALID, webtab.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}
