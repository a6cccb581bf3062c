package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbmp/go-formbank/pkg/form"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	result := form.BuildResult{
		FormID:                "form-123",
		EditURL:               "https://forms.example/edit/form-123",
		PublishedURL:          "https://forms.example/view/form-123",
		CreatedAt:             created,
		ResponseSpreadsheetID: "sheet-9",
		ResponseSheetName:     "Responses",
	}
	stats := form.ValidationStats{
		SectionsCount:  2,
		QuestionsCount: 7,
		SkippedCount:   1,
		Errors:         []string{`Question "Q3" has invalid type: BANANA`},
	}
	meta := form.Meta{Title: "Wellness Survey"}

	id, err := s.Save(ctx, meta, result, stats)
	require.NoError(t, err)
	assert.Positive(t, id)

	records, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, "Wellness Survey", rec.FormTitle)
	assert.Equal(t, result, rec.Result)
	assert.Equal(t, stats, rec.Stats)
	assert.False(t, rec.RecordedAt.IsZero())
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"First", "Second", "Third"} {
		_, err := s.Save(ctx, form.Meta{Title: title}, form.BuildResult{FormID: "f-" + title}, form.ValidationStats{})
		require.NoError(t, err)
	}

	records, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Third", records[0].FormTitle)
	assert.Equal(t, "Second", records[1].FormTitle)
}

func TestRecentEmpty(t *testing.T) {
	s := openTestStore(t)

	records, err := s.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}
