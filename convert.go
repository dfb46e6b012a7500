// Package hinglish converts English text to Hinglish, Hindi vocabulary in
// Latin script, by replacing known words one at a time.
package hinglish

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Punctuation selects how punctuation attached to a word is carried over to
// its replacement.
type Punctuation int

const (
	// PunctuationTrailing assumes punctuation only ever trails the word.
	// The characters after the clean word's length are appended to the
	// replacement, so leading punctuation ends up misplaced.
	PunctuationTrailing Punctuation = iota
	// PunctuationSegmented splits a token into leading punctuation, the word
	// and trailing punctuation, and keeps both ends in place.
	PunctuationSegmented
)

func (p Punctuation) String() string {
	switch p {
	case PunctuationTrailing:
		return "trailing"
	case PunctuationSegmented:
		return "segmented"
	default:
		return fmt.Sprintf("Punctuation(%d)", int(p))
	}
}

// ParsePunctuation is the inverse of Punctuation.String.
func ParsePunctuation(s string) (Punctuation, error) {
	switch s {
	case "trailing":
		return PunctuationTrailing, nil
	case "segmented":
		return PunctuationSegmented, nil
	}
	return 0, fmt.Errorf("unknown punctuation mode %q", s)
}

// Converter replaces words using a Dictionary.
type Converter struct {
	dict  *Dictionary
	punct Punctuation
	log   *zap.Logger
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// WithPunctuation sets the punctuation mode. The default is PunctuationTrailing.
func WithPunctuation(p Punctuation) ConverterOption {
	return func(c *Converter) {
		c.punct = p
	}
}

// WithLogger sets the logger used for diagnostics. The default discards everything.
func WithLogger(l *zap.Logger) ConverterOption {
	return func(c *Converter) {
		c.log = l
	}
}

func NewConverter(d *Dictionary, opts ...ConverterOption) *Converter {
	c := &Converter{dict: d, log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dictionary returns the table c looks words up in.
func (c *Converter) Dictionary() *Dictionary {
	return c.dict
}

// ConvertWord returns the replacement for token, or token itself if its clean
// form is not in the dictionary.
func (c *Converter) ConvertWord(token string) string {
	out, _ := c.convertWord(token)
	return out
}

func (c *Converter) convertWord(token string) (string, bool) {
	if c.punct == PunctuationSegmented {
		return c.convertSegmented(token)
	}

	clean := cleanWord(token)
	repl, ok := c.dict.Lookup(clean)
	if !ok {
		return token, false
	}
	if token == clean {
		return repl, true
	}

	// Everything past the clean word's length is treated as punctuation.
	n := utf8.RuneCountInString(clean)
	runes := []rune(token)
	if n < len(runes) {
		repl += string(runes[n:])
	}
	return repl, true
}

func (c *Converter) convertSegmented(token string) (string, bool) {
	prefix, core, suffix := splitToken(token)
	if core == "" || strings.IndexFunc(core, isNotWordRune) >= 0 {
		return token, false
	}
	repl, ok := c.dict.Lookup(strings.ToLower(core))
	if !ok {
		return token, false
	}
	return prefix + repl + suffix, true
}

// ConvertLine converts every whitespace separated token of line and joins the
// results with single spaces. A blank line converts to "".
func (c *Converter) ConvertLine(line string) string {
	out, _, _ := c.convertLine(line)
	return out
}

func (c *Converter) convertLine(line string) (out string, tokens, replaced int) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return "", 0, 0
	}

	var b strings.Builder
	b.Grow(len(line) + len(line)/2)
	for i, w := range words {
		if i > 0 {
			b.WriteByte(' ')
		}
		conv, ok := c.convertWord(w)
		if ok {
			replaced++
		}
		b.WriteString(conv)
	}
	return b.String(), len(words), replaced
}

// cleanWord lowercases token and drops everything but word characters and
// whitespace.
func cleanWord(token string) string {
	return strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, strings.ToLower(token))
}

// splitToken splits token into its leading non-word run, the middle, and its
// trailing non-word run.
func splitToken(token string) (prefix, core, suffix string) {
	start := strings.IndexFunc(token, isWordRune)
	if start < 0 {
		return token, "", ""
	}
	end := strings.LastIndexFunc(token, isWordRune)
	_, size := utf8.DecodeRuneInString(token[end:])
	end += size
	return token[:start], token[start:end], token[end:]
}

func isNotWordRune(r rune) bool {
	return !isWordRune(r)
}
