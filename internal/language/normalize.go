package language

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	xlanguage "golang.org/x/text/language"
)

// ArabicRanges lists the code-point blocks kept verbatim by normalization in
// addition to Unicode word characters: Arabic, Arabic Supplement,
// Arabic Extended-A and both Arabic Presentation Forms blocks.
var ArabicRanges = [][2]rune{
	{0x0600, 0x06FF},
	{0x0750, 0x077F},
	{0x08A0, 0x08FF},
	{0xFB50, 0xFDFF},
	{0xFE70, 0xFEFF},
}

var separatorRun = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_` + arabicClass() + `]+`)

// Normalizer turns raw text into detection tokens. The corpus loader and the
// detector must share one value so both sides tokenize identically.
type Normalizer struct {
	CaseFold bool
}

// Default is the normalizer used by the service; case folding is always on.
var Default = Normalizer{CaseFold: true}

// Normalize collapses every run of characters outside the kept classes into a
// single space and lowercases the result when case folding is enabled.
func (n Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}
	normalized := separatorRun.ReplaceAllString(text, " ")
	if n.CaseFold {
		normalized = cases.Lower(xlanguage.Und).String(normalized)
	}
	return normalized
}

// Tokens normalizes text and splits it on whitespace. Empty tokens never appear.
func (n Normalizer) Tokens(text string) []string {
	return strings.Fields(n.Normalize(text))
}

func arabicClass() string {
	var b strings.Builder
	for _, r := range ArabicRanges {
		fmt.Fprintf(&b, `\x{%04X}-\x{%04X}`, r[0], r[1])
	}
	return b.String()
}
