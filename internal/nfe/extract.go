package nfe

import (
	"regexp"
	"strings"
	"sync"
)

// The extractor scans raw markup with per-tag patterns instead of building an
// object model. It targets the NF-e document family only: tag names are matched
// case-insensitively, entities and namespace prefixes are left untouched, and a
// failed lookup yields an empty result rather than an error.

type tagPattern struct {
	open  *regexp.Regexp
	close *regexp.Regexp
}

var tagPatterns sync.Map // lower-cased tag name -> *tagPattern

func patternFor(tag string) *tagPattern {
	key := strings.ToLower(tag)
	if p, ok := tagPatterns.Load(key); ok {
		return p.(*tagPattern)
	}
	quoted := regexp.QuoteMeta(tag)
	p := &tagPattern{
		open:  regexp.MustCompile(`(?i)<` + quoted + `(\s[^>]*)?>`),
		close: regexp.MustCompile(`(?i)</` + quoted + `\s*>`),
	}
	actual, _ := tagPatterns.LoadOrStore(key, p)
	return actual.(*tagPattern)
}

// element holds byte offsets of one located element.
type element struct {
	start      int // '<' of the opening tag
	innerStart int
	innerEnd   int
	end        int // one past '>' of the closing tag
}

// locate finds the first complete element named tag at or after offset from.
// Self-closing elements are skipped; the closing tag is the nearest one after
// the opening tag.
func locate(markup, tag string, from int) (element, bool) {
	p := patternFor(tag)
	for from < len(markup) {
		loc := p.open.FindStringSubmatchIndex(markup[from:])
		if loc == nil {
			return element{}, false
		}
		openStart, openEnd := from+loc[0], from+loc[1]
		if loc[2] >= 0 && strings.HasSuffix(strings.TrimSpace(markup[from+loc[2]:from+loc[3]]), "/") {
			from = openEnd
			continue
		}
		closeLoc := p.close.FindStringIndex(markup[openEnd:])
		if closeLoc == nil {
			return element{}, false
		}
		return element{
			start:      openStart,
			innerStart: openEnd,
			innerEnd:   openEnd + closeLoc[0],
			end:        openEnd + closeLoc[1],
		}, true
	}
	return element{}, false
}

// Scalar returns the trimmed text content of the first element named tag.
// It reports false when the element is absent, self-closing or empty.
func Scalar(markup, tag string) (string, bool) {
	el, ok := locate(markup, tag, 0)
	if !ok {
		return "", false
	}
	v := strings.TrimSpace(markup[el.innerStart:el.innerEnd])
	if v == "" {
		return "", false
	}
	return v, true
}

// Block returns the raw inner markup of the first element named tag.
func Block(markup, tag string) (string, bool) {
	el, ok := locate(markup, tag, 0)
	if !ok {
		return "", false
	}
	return markup[el.innerStart:el.innerEnd], true
}

// AllBlocks returns every element named tag, opening through closing tag
// inclusive, in document order.
func AllBlocks(markup, tag string) []string {
	var blocks []string
	from := 0
	for {
		el, ok := locate(markup, tag, from)
		if !ok {
			return blocks
		}
		blocks = append(blocks, markup[el.start:el.end])
		from = el.end
	}
}

// scalarOr is Scalar with the absent case collapsed to "".
func scalarOr(markup, tag string) string {
	v, _ := Scalar(markup, tag)
	return v
}
