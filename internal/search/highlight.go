package search

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Span is a half-open [Start, End) byte range of matched text.
type Span struct {
	Start int
	End   int
}

// foldText lowers text rune by rune and returns the lowered form together
// with a table mapping every lowered byte index to the offset of the rune
// it came from in text. The table carries one extra entry for len(text),
// so a lowered index just past a match maps to the original end offset.
// Lowering can change a rune's byte width (Ⱥ is two bytes, ⱥ is three),
// so lowered indexes must never be used to slice text directly.
func foldText(text string) (string, []int) {
	var b strings.Builder
	b.Grow(len(text))

	offsets := make([]int, 0, len(text)+1)
	for i, r := range text {
		low := unicode.ToLower(r)
		for j := 0; j < utf8.RuneLen(low); j++ {
			offsets = append(offsets, i)
		}
		b.WriteRune(low)
	}
	offsets = append(offsets, len(text))

	return b.String(), offsets
}

// MatchSpans finds every case-insensitive occurrence of each term inside
// text and merges overlapping or adjacent occurrences into inclusive
// unions, returned in ascending order. Spans index the original text.
// Blank terms are skipped.
func MatchSpans(text string, terms []string) []Span {
	lowered, offsets := foldText(text)

	var spans []Span
	for _, term := range terms {
		needle := strings.ToLower(strings.TrimSpace(term))
		if needle == "" {
			continue
		}

		offset := 0
		for {
			idx := strings.Index(lowered[offset:], needle)
			if idx < 0 {
				break
			}
			start := offset + idx
			spans = append(spans, Span{Start: offsets[start], End: offsets[start+len(needle)]})
			offset = start + 1
		}
	}

	if len(spans) == 0 {
		return nil
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start == spans[j].Start {
			return spans[i].End < spans[j].End
		}
		return spans[i].Start < spans[j].Start
	})

	merged := []Span{spans[0]}
	for _, span := range spans[1:] {
		last := &merged[len(merged)-1]
		if span.Start <= last.End {
			if span.End > last.End {
				last.End = span.End
			}
			continue
		}
		merged = append(merged, span)
	}

	return merged
}

// MatchedTerms returns the subset of terms that occur in text,
// case-insensitively, preserving term order. Used as the client-side
// fallback when the backend omits a result's matched-keyword list.
func MatchedTerms(text string, terms []string) []string {
	lowered := strings.ToLower(text)

	var matched []string
	for _, term := range terms {
		needle := strings.ToLower(strings.TrimSpace(term))
		if needle == "" {
			continue
		}
		if strings.Contains(lowered, needle) {
			matched = append(matched, term)
		}
	}

	return matched
}

// Highlight renders text with every matched span wrapped by the given
// render function. Non-matching segments pass through unchanged.
func Highlight(text string, terms []string, render func(string) string) string {
	spans := MatchSpans(text, terms)
	if len(spans) == 0 {
		return text
	}

	var b strings.Builder
	cursor := 0
	for _, span := range spans {
		b.WriteString(text[cursor:span.Start])
		b.WriteString(render(text[span.Start:span.End]))
		cursor = span.End
	}
	b.WriteString(text[cursor:])

	return b.String()
}
