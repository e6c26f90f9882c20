package tools

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"mcptoolkit/internal/registry"
)

// CountWordsInput carries the text to analyze.
type CountWordsInput struct {
	Text string `json:"text" jsonschema:"Text to analyze."`
}

// CountWords reports word, character, and line statistics for a text.
// Statistics are order-independent: shuffling word order leaves every
// count unchanged.
func CountWords(ctx context.Context, in CountWordsInput) registry.Envelope {
	words := strings.Fields(in.Text)

	totalWordLen := 0
	unique := map[string]struct{}{}
	for _, word := range words {
		totalWordLen += utf8.RuneCountInString(word)
		unique[word] = struct{}{}
	}

	average := 0.0
	if len(words) > 0 {
		average = float64(totalWordLen) / float64(len(words))
	}

	return registry.Envelope{
		"word_count":                len(words),
		"character_count":           utf8.RuneCountInString(in.Text),
		"character_count_no_spaces": utf8.RuneCountInString(strings.ReplaceAll(in.Text, " ", "")),
		"line_count":                countLines(in.Text),
		"average_word_length":       average,
		"unique_words":              len(unique),
	}
}

var lineTerminators = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func countLines(text string) int {
	if text == "" {
		return 0
	}
	lines := strings.Split(lineTerminators.Replace(text), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return len(lines)
}

// FormatTextInput selects the text and the formatting mode.
type FormatTextInput struct {
	Text       string `json:"text" jsonschema:"Text to format."`
	FormatType string `json:"format_type,omitempty" jsonschema:"One of clean, uppercase, lowercase, title, sentence; defaults to clean."`
}

// FormatText rewrites text in a named mode. An unrecognized mode passes
// the text through unchanged. The signed character-length delta between
// input and output is always reported.
func FormatText(ctx context.Context, in FormatTextInput) registry.Envelope {
	mode := in.FormatType
	if mode == "" {
		mode = "clean"
	}

	var formatted string
	switch mode {
	case "clean":
		formatted = strings.Join(strings.Fields(in.Text), " ")
	case "uppercase":
		formatted = strings.ToUpper(in.Text)
	case "lowercase":
		formatted = strings.ToLower(in.Text)
	case "title":
		formatted = cases.Title(language.Und).String(in.Text)
	case "sentence":
		// Capitalize before trimming: a segment with leading space
		// keeps its first letter lowercase.
		segments := strings.Split(in.Text, ".")
		for i, segment := range segments {
			segments[i] = strings.TrimSpace(capitalize(segment))
		}
		formatted = strings.Join(segments, ". ")
	default:
		formatted = in.Text
	}

	return registry.Envelope{
		"original":      in.Text,
		"formatted":     formatted,
		"format_type":   mode,
		"length_change": utf8.RuneCountInString(formatted) - utf8.RuneCountInString(in.Text),
	}
}

// capitalize uppercases the first rune and lowercases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
