package hinglish

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/vyevs/hinglish/dictionaries"
)

// ErrInvalidKey is wrapped by every *KeyError.
var ErrInvalidKey = errors.New("invalid dictionary key")

// KeyError reports a dictionary key that can never match a clean word.
type KeyError struct {
	Key    string
	Reason string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("invalid dictionary key %q: %s", e.Key, e.Reason)
}

func (e *KeyError) Unwrap() error {
	return ErrInvalidKey
}

// Dictionary maps lowercase English words to their Hinglish replacement.
// It is never modified after construction, so it is safe to share.
type Dictionary struct {
	words map[string]string
}

// NewDictionary copies m into a new Dictionary. Every key must be a non-empty
// lowercase run of word characters, since only those can be produced by
// cleaning a token.
func NewDictionary(m map[string]string) (*Dictionary, error) {
	words := make(map[string]string, len(m))
	for k, v := range m {
		if err := validateKey(k); err != nil {
			return nil, err
		}
		words[k] = v
	}
	return &Dictionary{words: words}, nil
}

func validateKey(k string) error {
	if k == "" {
		return &KeyError{Key: k, Reason: "empty"}
	}
	if strings.ToLower(k) != k {
		return &KeyError{Key: k, Reason: "not lowercase"}
	}
	for _, r := range k {
		if !isWordRune(r) {
			return &KeyError{Key: k, Reason: fmt.Sprintf("contains %q", r)}
		}
	}
	return nil
}

// DefaultDictionary decodes the table compiled into the binary.
func DefaultDictionary() (*Dictionary, error) {
	d, err := ReadDictionary(bytes.NewReader(dictionaries.Hinglish()))
	if err != nil {
		return nil, fmt.Errorf("failed to load built-in dictionary: %w", err)
	}
	return d, nil
}

// ReadDictionaryFromFile uses ReadDictionary to read from the specified file.
func ReadDictionaryFromFile(file string) (*Dictionary, error) {
	bs, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ReadDictionary(bytes.NewReader(bs))
}

// ReadDictionary reads a YAML mapping of word to replacement from r.
func ReadDictionary(r io.Reader) (*Dictionary, error) {
	var m map[string]string
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &Dictionary{words: map[string]string{}}, nil
		}
		return nil, fmt.Errorf("failed to decode dictionary: %w", err)
	}
	return NewDictionary(m)
}

// Lookup returns the replacement for the clean word w.
func (d *Dictionary) Lookup(w string) (string, bool) {
	r, ok := d.words[w]
	return r, ok
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// Words returns every key in sorted order.
func (d *Dictionary) Words() []string {
	out := make([]string, 0, len(d.words))
	for w := range d.words {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// Merge returns a new Dictionary holding the entries of d and other.
// Entries of other take precedence.
func (d *Dictionary) Merge(other *Dictionary) *Dictionary {
	words := make(map[string]string, len(d.words)+len(other.words))
	for k, v := range d.words {
		words[k] = v
	}
	for k, v := range other.words {
		words[k] = v
	}
	return &Dictionary{words: words}
}

// isWordRune reports whether r survives cleaning: letters, numbers and '_'.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
