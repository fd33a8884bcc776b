// Package grammar implements the RFC 3986 percent codec: character
// classification, escaping, and the strict/lenient decoder with UTF-8
// repair. Everything here is pure and safe for concurrent use.
package grammar

import (
	"bytes"
	"unicode/utf8"

	"braces.dev/errtrace"
)

// Error is the type of low-level codec errors.
type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrBadEscape Error = "malformed percent-escape"
	ErrNotUTF8   Error = "invalid UTF-8"
)

// DecodeMode selects how a valid %XY escape is rewritten.
type DecodeMode int

const (
	// ModeNormalize decodes only escapes of unreserved characters and
	// re-emits the rest with upper-cased hex digits.
	ModeNormalize DecodeMode = iota
	// ModeDecode decodes every valid escape.
	ModeDecode
)

// DecodeOptions controls the strictness of Decode.
type DecodeOptions struct {
	// Strict fails on a "%" that is not followed by two hex digits.
	Strict bool
	// AllowSinglePercent passes such a "%" through even under Strict.
	AllowSinglePercent bool
	// UTF8Only fails when the decoded output is not valid UTF-8 instead
	// of re-encoding the offending bytes.
	UTF8Only bool
}

// Decode percent-decodes s according to mode and opts.
//
// A "%" not followed by two hex digits passes through literally in
// lenient mode and fails with [ErrBadEscape] under Strict (unless
// AllowSinglePercent). The output is always valid UTF-8: decoded byte
// runs that are not are either rejected with [ErrNotUTF8] (UTF8Only) or
// selectively re-encoded back to %XX escapes.
func Decode[T ~string | ~[]byte](s T, mode DecodeMode, opts DecodeOptions) (string, error) {
	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+2 >= len(s) || !ishex(s[i+1]) || !ishex(s[i+2]) {
			if opts.Strict && !opts.AllowSinglePercent {
				return "", errtrace.Wrap(ErrBadEscape)
			}
			b.WriteByte(c)
			continue
		}
		v := unhex(s[i+1])<<4 | unhex(s[i+2])
		if mode == ModeNormalize && !IsCharUnreserved(v) {
			b.WriteByte('%')
			b.WriteByte(upperhex[v>>4])
			b.WriteByte(upperhex[v&15])
		} else {
			b.WriteByte(v)
		}
		i += 2
	}
	return errtrace.Wrap2(EnsureUTF8(b.Bytes(), opts.UTF8Only))
}

// EnsureUTF8 returns b as a string with every invalid byte re-encoded as
// a %XX escape, keeping valid runs untouched. With utf8Only it fails with
// [ErrNotUTF8] instead.
func EnsureUTF8(b []byte, utf8Only bool) (string, error) {
	if utf8.Valid(b) {
		return string(b), nil
	}
	if utf8Only {
		return "", errtrace.Wrap(ErrNotUTF8)
	}

	var out bytes.Buffer
	out.Grow(len(b) + 8)
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			out.WriteByte('%')
			out.WriteByte(upperhex[b[i]>>4])
			out.WriteByte(upperhex[b[i]&15])
			i++
			continue
		}
		out.Write(b[i : i+size])
		i += size
	}
	return out.String(), nil
}

// Escape escapes s by replacing each char matched by the shouldEscape
// callback with the hex form "% HEXDIG HEXDIG".
//
// With keepEscapes, an existing valid %XY triple is copied through
// unchanged; use it only on input that is still percent-encoded. Decoded
// input must be escaped with keepEscapes=false so that a literal "%XY"
// in the data survives a re-parse.
func Escape[T ~string | ~[]byte](s T, shouldEscape func(c byte) bool, keepEscapes bool) T {
	if len(s) == 0 {
		return s
	}

	if shouldEscape == nil {
		shouldEscape = func(c byte) bool { return !IsCharUnreserved(c) }
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch {
		case keepEscapes && s[i] == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]):
			b.WriteByte(s[i])
			b.WriteByte(s[i+1])
			b.WriteByte(s[i+2])
			i += 2
		case shouldEscape(s[i]):
			b.WriteByte('%')
			b.WriteByte(upperhex[s[i]>>4])
			b.WriteByte(upperhex[s[i]&15])
		default:
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}
