package guri

import (
	"maps"
	"strings"

	"braces.dev/errtrace"

	"github.com/antono/guri/internal/errorutil"
	"github.com/antono/guri/internal/grammar"
	"github.com/antono/guri/internal/util"
)

// Params maps decoded attribute names to decoded values. Duplicate
// attributes overwrite: the last occurrence wins.
type Params map[string]string

// Get returns the value associated with the given name.
func (ps Params) Get(name string) (string, bool) {
	v, ok := ps[name]
	return v, ok
}

// Set sets the name to value, replacing any existing value.
func (ps Params) Set(name, value string) Params {
	ps[name] = value
	return ps
}

// Has checks whether a given name is in the table.
func (ps Params) Has(name string) bool {
	_, ok := ps[name]
	return ok
}

// Del deletes the value associated with the name.
func (ps Params) Del(name string) Params {
	delete(ps, name)
	return ps
}

// Clone returns a copy of the table.
func (ps Params) Clone() Params {
	if ps == nil {
		return nil
	}
	return maps.Clone(ps)
}

// ParseParams parses a string of "attribute=value" pairs delimited by
// sep (usually ';' or '&') into a [Params] table. Names and values are
// fully percent-decoded. With caseInsensitive, names are lowered so that
// later occurrences overwrite regardless of case. A chunk without "="
// fails with [ErrBadParams].
func ParseParams[T ~string | ~[]byte](s T, sep byte, caseInsensitive bool) (Params, error) {
	str := string(s)
	ps := make(Params)
	for len(str) > 0 {
		chunk := str
		if k := strings.IndexByte(str, sep); k >= 0 {
			chunk, str = str[:k], str[k+1:]
		} else {
			str = ""
		}

		eq := strings.IndexByte(chunk, '=')
		if eq < 0 {
			return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrBadParams, "no %q in %q", "=", chunk))
		}

		// lenient decode cannot fail
		name, _ := grammar.Decode(chunk[:eq], grammar.ModeDecode, grammar.DecodeOptions{})
		value, _ := grammar.Decode(chunk[eq+1:], grammar.ModeDecode, grammar.DecodeOptions{})
		if caseInsensitive {
			name = util.LCase(name)
		}
		ps[name] = value
	}
	return ps, nil
}
