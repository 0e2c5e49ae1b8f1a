package bootstrap_test

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-generator/internal/app"
	"invoice-generator/internal/bootstrap"
	"invoice-generator/internal/config"
	"invoice-generator/internal/core"
)

func TestNew_InMemory(t *testing.T) {
	cfg := &config.Config{OutputDir: t.TempDir(), PreviewCacheTTL: time.Minute}

	rt, err := bootstrap.New(context.Background(), cfg)
	require.NoError(t, err)
	defer rt.Close()

	assert.Equal(t, "postgres=false redis=false", rt.String())

	res, err := rt.Service.AmountInWords(context.Background(), "19")
	require.NoError(t, err)
	assert.Equal(t, "Nineteen Rupees Only", res.Words)

	_, err = rt.Service.DraftFromText(context.Background(), app.AssistRequest{TemplateID: "invoice", Text: "x"})
	assert.ErrorIs(t, err, app.ErrAIUnavailable)
}

func TestNew_WithRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg := &config.Config{OutputDir: t.TempDir(), RedisURL: "redis://" + mr.Addr(), PreviewCacheTTL: time.Minute}
	rt, err := bootstrap.New(context.Background(), cfg)
	require.NoError(t, err)
	defer rt.Close()

	req := app.DocumentRequest{TemplateID: "receipt", Values: core.FormDraft{Fields: map[string]string{"amount": "5"}}}
	first, err := rt.Service.Preview(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := rt.Service.Preview(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.Cached)

	families, err := rt.Registry.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "invoice_documents_rendered_total")
}

func TestNew_BadRedisURL(t *testing.T) {
	cfg := &config.Config{OutputDir: t.TempDir(), RedisURL: "not-a-url", PreviewCacheTTL: time.Minute}

	_, err := bootstrap.New(context.Background(), cfg)
	assert.Error(t, err)
}
