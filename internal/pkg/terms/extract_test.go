package terms

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "frequency order",
			text: "Scheduler scheduler SCHEDULER task task leader",
			want: []string{"scheduler", "task", "leader"},
		},
		{
			name: "ties keep first-seen order",
			text: "beta alpha gamma alpha beta gamma",
			want: []string{"beta", "alpha", "gamma"},
		},
		{
			name: "punctuation discarded",
			text: "raft-based, leader; election!",
			want: []string{"raft", "based", "leader", "election"},
		},
		{
			name: "capped at five",
			text: "one two three four five six seven",
			want: []string{"one", "two", "three", "four", "five"},
		},
		{
			name: "stop words removed",
			text: "A distributed task scheduler.",
			want: []string{"distributed", "task", "scheduler"},
		},
		{
			name: "unicode letters are words",
			text: "café café naïve",
			want: []string{"café", "naïve"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text))
		})
	}
}

func TestExtract_EmptyInputs(t *testing.T) {
	for _, text := range []string{"", "   ", "the and of", "!!! ... ,,,", "This is it, and that was the"} {
		got := Extract(text)
		assert.NotNil(t, got, "input %q", text)
		assert.Empty(t, got, "input %q", text)
	}
}

func TestQuery(t *testing.T) {
	assert.Equal(t, "task scheduler raft", Query([]string{"task", "scheduler", "raft"}))
	assert.Equal(t, "", Query(nil))
}

func sortedStopWords() []string {
	stops := make([]string, 0, len(stopWords))
	for w := range stopWords {
		stops = append(stops, w)
	}
	sort.Strings(stops)
	return stops
}

func vocabulary() []string {
	words := []string{"task", "scheduler", "raft", "leader", "node", "queue", "go", "api", "cache", "x1"}
	for _, w := range sortedStopWords() {
		words = append(words, w, strings.ToUpper(w))
	}
	return words
}

func genText() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		words := rapid.SliceOf(rapid.SampledFrom(vocabulary())).Draw(t, "words")
		seps := []string{" ", ", ", ". ", "\n", "-", "!"}
		var b strings.Builder
		for i, w := range words {
			if i > 0 {
				b.WriteString(rapid.SampledFrom(seps).Draw(t, "sep"))
			}
			b.WriteString(w)
		}
		return b.String()
	})
}

func TestExtract_Properties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := genText().Draw(rt, "text")

		first := Extract(text)
		second := Extract(text)
		if !assert.ObjectsAreEqual(first, second) {
			rt.Fatalf("not deterministic: %v vs %v", first, second)
		}
		if len(first) > MaxTerms {
			rt.Fatalf("too many terms: %d", len(first))
		}

		seen := make(map[string]bool)
		for _, term := range first {
			if IsStopWord(term) {
				rt.Fatalf("stop word returned: %q", term)
			}
			if seen[term] {
				rt.Fatalf("duplicate term: %q", term)
			}
			seen[term] = true
		}
	})
}

func TestExtract_StopWordsOnly(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		words := rapid.SliceOf(rapid.SampledFrom(sortedStopWords())).Draw(rt, "words")

		if got := Extract(strings.Join(words, " ")); len(got) != 0 {
			rt.Fatalf("expected no terms, got %v", got)
		}
	})
}
