package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"invoice-generator/internal/store"
)

// exerciseFileStore runs the FileStore contract against any implementation.
func exerciseFileStore(t *testing.T, s store.FileStore) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

	older := &store.GeneratedFile{TemplateID: "invoice", FileName: "Tax Invoice_1", FilePath: "/tmp/a.pdf", Format: "pdf",
		GrandTotal: decimal.RequireFromString("2360.00"), CreatedAt: base}
	newer := &store.GeneratedFile{TemplateID: "receipt", FileName: " Payment Receipt_2 ", FilePath: "/tmp/b.pdf", Format: "pdf",
		GrandTotal: decimal.RequireFromString("1500.00"), CreatedAt: base.Add(time.Minute)}
	require.NoError(t, s.Save(ctx, older))
	require.NoError(t, s.Save(ctx, newer))
	require.NotEqual(t, uuid.Nil, older.ID)
	require.Equal(t, "Payment Receipt_2", newer.FileName)

	files, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Equal(t, newer.ID, files[0].ID)
	require.Equal(t, older.ID, files[1].ID)
	require.True(t, decimal.RequireFromString("2360").Equal(files[1].GrandTotal))

	got, err := s.Get(ctx, older.ID)
	require.NoError(t, err)
	require.Equal(t, "invoice", got.TemplateID)

	renamed, err := s.Rename(ctx, older.ID, "April invoice", "/tmp/April invoice.pdf")
	require.NoError(t, err)
	require.Equal(t, "April invoice", renamed.FileName)
	require.Equal(t, "/tmp/April invoice.pdf", renamed.FilePath)

	_, err = s.Rename(ctx, older.ID, "   ", "/tmp/x.pdf")
	require.True(t, errors.Is(err, store.ErrEmptyFileName))

	deleted, err := s.Delete(ctx, older.ID)
	require.NoError(t, err)
	require.Equal(t, "/tmp/April invoice.pdf", deleted.FilePath)

	_, err = s.Get(ctx, older.ID)
	require.True(t, errors.Is(err, store.ErrFileNotFound))
	_, err = s.Delete(ctx, older.ID)
	require.True(t, errors.Is(err, store.ErrFileNotFound))
	_, err = s.Rename(ctx, uuid.New(), "x", "y")
	require.True(t, errors.Is(err, store.ErrFileNotFound))

	require.True(t, errors.Is(s.Save(ctx, &store.GeneratedFile{FileName: ""}), store.ErrEmptyFileName))
}

func TestMemoryFileStore(t *testing.T) {
	exerciseFileStore(t, store.NewMemoryFileStore())
}
