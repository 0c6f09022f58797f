package textindex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// streamOf returns the narration stream for paragraphs joined by one break.
func streamOf(paragraphs []string) []string {
	var out []string
	for i, p := range paragraphs {
		if i > 0 {
			out = append(out, "\n")
		}
		for _, r := range p {
			out = append(out, string(r))
		}
	}
	return out
}

func TestBuildCharacterWordMap(t *testing.T) {
	paragraphs := []string{"The cat", "sat down."}
	m := BuildCharacterWordMap(paragraphs, streamOf(paragraphs))

	ref, ok := m.Lookup("c", 4)
	require.True(t, ok)
	require.Equal(t, WordRef{Paragraph: 0, Word: 1}, ref)

	// "sat" starts after "The cat" plus one break.
	ref, ok = m.Lookup("s", 8)
	require.True(t, ok)
	require.Equal(t, WordRef{Paragraph: 1, Word: 0}, ref)

	ref, ok = m.Lookup(".", 16)
	require.True(t, ok)
	require.Equal(t, WordRef{Paragraph: 1, Word: 1}, ref)

	_, ok = m.Lookup(" ", 3)
	require.False(t, ok, "whitespace is not mapped")
	require.Equal(t, 14, m.Len())
}

func TestCharacterWordMapMissesOnGlyphDrift(t *testing.T) {
	m := BuildCharacterWordMap([]string{"cat"}, []string{"c", "a", "t"})

	_, ok := m.Lookup("x", 1)
	require.False(t, ok)

	_, ok = m.Resolve([]string{"c"}, 2)
	require.False(t, ok, "index outside the stream")
}

func TestCharacterWordMapUsesAudioGlyphs(t *testing.T) {
	m := BuildCharacterWordMap([]string{"cafe"}, []string{"c", "a", "f", "é"})

	_, ok := m.Lookup("e", 3)
	require.False(t, ok)
	ref, ok := m.Lookup("é", 3)
	require.True(t, ok)
	require.Equal(t, WordRef{Paragraph: 0, Word: 0}, ref)
}

func TestCharacterWordMapEmptyWithoutAudio(t *testing.T) {
	m := BuildCharacterWordMap([]string{"The cat"}, nil)
	require.Zero(t, m.Len())
	require.Zero(t, m.Coverage(nil))
}

func TestRoundTripLookupAgreesWithWordRanges(t *testing.T) {
	paragraphs := []string{"Alpha beta, gamma.", "Delta  epsilon", "zeta"}
	stream := streamOf(paragraphs)
	ix := Build(paragraphs, nil)
	m := BuildCharacterWordMap(paragraphs, stream)

	for global := range stream {
		ref, ok := m.Resolve(stream, global)
		if !ok {
			continue
		}
		r, ok := ix.ActiveRangeForChar(global, ref.Paragraph)
		require.True(t, ok, "global %d", global)
		require.True(t, r.Contains(global))

		want, ok := ix.Range(ref)
		require.True(t, ok)
		require.Equal(t, want, r)
	}
	require.InDelta(t, 1.0, m.Coverage(stream), 1e-9)
}

func TestBreakConventionsDisagreeAfterFirstParagraph(t *testing.T) {
	paragraphs := []string{"ab", "cd"}
	stream := streamOf(paragraphs)

	bare := BuildCharacterWordMapWithBreak(paragraphs, stream, 0)
	withBreak := BuildCharacterWordMapWithBreak(paragraphs, stream, 1)

	require.InDelta(t, 1.0, withBreak.Coverage(stream), 1e-9)
	require.Less(t, bare.Coverage(stream), 1.0)
}
