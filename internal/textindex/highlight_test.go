package textindex

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/highshore/one-cup-eng-sub002/models"
)

// alignedArticle narrates every stream character for 0.1s with no gaps.
func alignedArticle(paragraphs []string) *models.Article {
	stream := streamOf(paragraphs)
	track := make([]models.Timestamp, len(stream))
	for i, ch := range stream {
		track[i] = models.Timestamp{Start: float64(i) * 0.1, End: float64(i)*0.1 + 0.09, Character: ch}
	}
	return &models.Article{
		Content: models.ArticleContent{English: paragraphs},
		Audio:   &models.ArticleAudio{URL: "a.mp3", Timestamps: track, Characters: stream},
	}
}

func TestHighlighterExact(t *testing.T) {
	h := NewHighlighter(alignedArticle([]string{"The cat", "sat."}), DefaultBreakWidth)
	require.True(t, h.Alignment().Exact)
	require.Zero(t, h.Alignment().Delta)

	hl := h.At(0.45, 1.2)
	require.True(t, hl.Active)
	require.Equal(t, 4, hl.TimestampIndex)
	require.Equal(t, WordRef{Paragraph: 0, Word: 1}, hl.Word)
	require.Equal(t, Range{Start: 4, End: 6}, hl.Range)

	hl = h.At(0.85, 1.2)
	require.Equal(t, WordRef{Paragraph: 1, Word: 0}, hl.Word)
}

func TestHighlighterGapHasNoHighlight(t *testing.T) {
	h := NewHighlighter(alignedArticle([]string{"ab"}), DefaultBreakWidth)
	hl := h.At(0.095, 1)
	require.False(t, hl.Active)
	require.Equal(t, -1, hl.TimestampIndex)
}

func TestHighlighterSpaceCharacterHasNoWord(t *testing.T) {
	h := NewHighlighter(alignedArticle([]string{"a b"}), DefaultBreakWidth)
	hl := h.At(0.15, 1)
	require.False(t, hl.Active)
	require.Equal(t, 1, hl.TimestampIndex)
}

func TestHighlighterFallsBackOnDrift(t *testing.T) {
	article := &models.Article{
		Content: models.ArticleContent{English: []string{"one two", "three four"}},
		Audio: &models.ArticleAudio{
			URL:        "a.mp3",
			Timestamps: []models.Timestamp{{Start: 0, End: 1, Character: "o"}},
			Characters: []string{"o"},
		},
	}
	h := NewHighlighter(article, DefaultBreakWidth)
	require.False(t, h.Alignment().Exact)

	hl := h.At(0, 10)
	require.True(t, hl.Estimated)
	require.Equal(t, WordRef{Paragraph: 0, Word: 0}, hl.Word)

	hl = h.At(9.9, 10)
	require.Equal(t, WordRef{Paragraph: 1, Word: 1}, hl.Word)
}

func TestEstimate(t *testing.T) {
	ix := Build([]string{"aaaa bbbb", "cccc"}, nil)

	ref, ok := ix.Estimate(0, 13)
	require.True(t, ok)
	require.Equal(t, WordRef{Paragraph: 0, Word: 0}, ref)

	ref, ok = ix.Estimate(4, 13)
	require.True(t, ok)
	require.Equal(t, WordRef{Paragraph: 0, Word: 1}, ref, "space snaps to the following word")

	ref, ok = ix.Estimate(10, 13)
	require.True(t, ok)
	require.Equal(t, WordRef{Paragraph: 1, Word: 0}, ref)

	ref, ok = ix.Estimate(99, 13)
	require.True(t, ok)
	require.Equal(t, WordRef{Paragraph: 1, Word: 0}, ref)

	_, ok = ix.Estimate(1, 0)
	require.False(t, ok)
}

func TestHighlighterWithoutAudio(t *testing.T) {
	h := NewHighlighter(&models.Article{Content: models.ArticleContent{English: []string{"x"}}}, DefaultBreakWidth)
	require.False(t, h.Alignment().Exact)
	require.False(t, h.At(1, 0).Active)
}

func TestSeekTime(t *testing.T) {
	h := NewHighlighter(alignedArticle([]string{"abc"}), DefaultBreakWidth)
	start, ok := h.SeekTime(2)
	require.True(t, ok)
	require.InDelta(t, 0.2, start, 1e-9)
	_, ok = h.SeekTime(3)
	require.False(t, ok)
}
