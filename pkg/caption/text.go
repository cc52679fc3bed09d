package caption

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/adrianliechti/narrator/pkg/extractor"
)

// DefaultWords is the number of OCR words that condition a caption.
const DefaultWords = 5

const (
	promptScene    = "Describe the scene:"
	promptDetected = "Text detected:"
)

var reSymbols = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

// DetectedText returns up to n words recognized in doc, skipping words of
// two characters or less and purely numeric words.
func DetectedText(doc *extractor.Document, n int) string {
	if n <= 0 {
		n = DefaultWords
	}

	var words []string

	for _, word := range doc.Words() {
		if utf8.RuneCountInString(word) <= 2 || isNumeric(word) {
			continue
		}

		words = append(words, word)

		if len(words) == n {
			break
		}
	}

	return strings.TrimSpace(strings.Join(words, " "))
}

// CleanText strips everything except ASCII letters, digits and whitespace
// and keeps the first n words.
func CleanText(text string, n int) string {
	if n <= 0 {
		n = DefaultWords
	}

	words := strings.Fields(reSymbols.ReplaceAllString(text, ""))

	if len(words) > n {
		words = words[:n]
	}

	return strings.TrimSpace(strings.Join(words, " "))
}

// Prompt builds the captioning prompt, conditioned on clean text if any.
func Prompt(clean string) string {
	if clean == "" {
		return promptScene
	}

	return promptDetected + " " + clean + ". " + promptScene
}

// Polish turns raw model output into the final caption: repeated sentences
// are dropped, prompt markers removed, the text is cut at the first <end>
// and the detected text is appended unless the caption already mentions it.
func Polish(raw, clean string) string {
	var sentences []string

	seen := map[string]bool{}

	for _, s := range strings.Split(raw, ". ") {
		if seen[s] {
			continue
		}

		seen[s] = true
		sentences = append(sentences, s)
	}

	caption := strings.TrimSpace(strings.Join(sentences, ". "))

	caption = strings.TrimSpace(strings.ReplaceAll(caption, promptScene, ""))
	caption = strings.TrimSpace(strings.ReplaceAll(caption, promptDetected, ""))
	caption = strings.TrimSpace(strings.ReplaceAll(caption, "<start>", ""))

	caption, _, _ = strings.Cut(caption, "<end>")
	caption = strings.TrimSpace(caption)

	if !strings.Contains(strings.ToLower(caption), strings.ToLower(clean)) {
		caption = caption + ". (Detected text: " + clean + ")"
	}

	return caption
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !unicode.IsNumber(r) {
			return false
		}
	}

	return true
}
