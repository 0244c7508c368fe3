package scoring

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// pointsPerFlag is the credit each boolean compliance check contributes.
const pointsPerFlag = 25

// Clamp bounds a score to [0,100].
func Clamp(score int) int {
	return max(0, min(100, score))
}

// flagScore awards pointsPerFlag for every true flag.
func flagScore(flags ...bool) int {
	score := 0
	for _, f := range flags {
		if f {
			score += pointsPerFlag
		}
	}
	return Clamp(score)
}

// classIndex answers class-substring questions about a rendered document.
type classIndex struct {
	classes []string
}

// newClassIndex collects every class name used in html. Unparseable markup
// yields an empty index.
func newClassIndex(html string) classIndex {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return classIndex{}
	}
	seen := make(map[string]bool)
	var idx classIndex
	doc.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		for _, c := range strings.Fields(s.AttrOr("class", "")) {
			if !seen[c] {
				seen[c] = true
				idx.classes = append(idx.classes, c)
			}
		}
	})
	return idx
}

// contains reports whether any class name contains substr.
func (idx classIndex) contains(substr string) bool {
	if substr == "" {
		return false
	}
	for _, c := range idx.classes {
		if strings.Contains(c, substr) {
			return true
		}
	}
	return false
}

// hasProperty reports whether a root custom property resolved to a non-empty value.
func hasProperty(props map[string]string, name string) bool {
	if name == "" {
		return false
	}
	return strings.TrimSpace(props[name]) != ""
}

// SelectorMatches counts the elements of html matched by a CSS selector.
// A selector that does not compile matches nothing.
func SelectorMatches(html, selector string) (int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0, fmt.Errorf("parsing markup: %w", err)
	}
	return doc.Find(selector).Length(), nil
}

// HasAnyProperty reports whether any of the named root custom properties resolved.
func HasAnyProperty(props map[string]string, names ...string) bool {
	for _, n := range names {
		if hasProperty(props, n) {
			return true
		}
	}
	return false
}
