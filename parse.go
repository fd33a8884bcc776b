package guri

import (
	"errors"
	"net"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"golang.org/x/net/idna"

	"github.com/antono/guri/internal/errorutil"
	"github.com/antono/guri/internal/grammar"
)

// Parse parses an absolute URI from the given input s (string or []byte).
func Parse[T ~string | ~[]byte](s T, flags ParseFlags) (*URI, error) {
	return errtrace.Wrap2(ParseRelative(nil, s, flags))
}

// ParseRelative parses s and, when it is a relative reference, merges it
// with base per RFC 3986 section 5. A nil base requires s to be
// absolute; a non-nil base must itself be absolute.
func ParseRelative[T ~string | ~[]byte](base *URI, s T, flags ParseFlags) (*URI, error) {
	if base != nil && base.scheme == "" {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrNotAbsolute, "base URI has no scheme"))
	}

	str := string(s)
	if !flags.has(ParseStrict) {
		str = cleanWhitespace(str)
	}

	rp := split(str, flags.has(ParseStrict))
	u := &URI{flags: flags, scheme: rp.Scheme}

	if rp.HasUserinfo {
		u.hasUserinfo = true
		u.rawUserinfo, u.rawUserinfoOK = rp.Userinfo, true
		ui, err := parseUserinfo(rp.Userinfo, flags)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		u.setUserinfoParts(ui)
	}
	if rp.HasHost {
		u.hasHost = true
		u.rawHost, u.rawHostOK = rp.Host, true
		host, err := parseHost(rp.Host, flags)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		u.host = host
	}
	if rp.HasPort {
		port, err := parsePort(rp.Port)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		u.port = port
	}

	var err error
	u.rawPath, u.rawPathOK = rp.Path, true
	if u.path, err = normalizeComponent(rp.Path, flags); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if rp.HasQuery {
		u.hasQuery = true
		u.rawQuery, u.rawQueryOK = rp.Query, true
		if u.query, err = normalizeComponent(rp.Query, flags); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	if rp.HasFragment {
		u.hasFragment = true
		u.rawFragment, u.rawFragmentOK = rp.Fragment, true
		if u.fragment, err = normalizeComponent(rp.Fragment, flags); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}

	if u.scheme == "" && base == nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrNotAbsolute, "cannot parse %q without a base", str))
	}
	if base != nil {
		u.resolve(base)
	}
	return u, nil
}

// ParseHostPort extracts the scheme, host and port of a network URI.
// The port is 0 when the URI does not specify one.
func ParseHostPort[T ~string | ~[]byte](s T, flags ParseFlags) (scheme, host string, port uint16, err error) {
	u, err := Parse(s, flags)
	if err != nil {
		return "", "", 0, errtrace.Wrap(err)
	}
	return u.scheme, u.host, u.port, nil
}

// cleanWhitespace strips surrounding ASCII whitespace and removes
// internal tabs and newlines, the lenient-mode pre-clean applied before
// splitting.
func cleanWhitespace(s string) string {
	s = strings.TrimFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v'
	})
	if !strings.ContainsAny(s, "\t\n\r") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c != '\t' && c != '\n' && c != '\r' {
			b.WriteByte(c)
		}
	}
	return strings.TrimRight(b.String(), " \f\v")
}

func decodeOpts(flags ParseFlags) grammar.DecodeOptions {
	return grammar.DecodeOptions{
		Strict:             flags.has(ParseStrict),
		AllowSinglePercent: flags.has(ParseHTML5),
		UTF8Only:           flags.has(ParseUTF8Only),
	}
}

// normalizeComponent percent-normalizes (or, with ParseDecoded, fully
// decodes) a path, query or fragment component.
func normalizeComponent(raw string, flags ParseFlags) (string, error) {
	mode := grammar.ModeNormalize
	if flags.has(ParseDecoded) {
		mode = grammar.ModeDecode
	}
	s, err := grammar.Decode(raw, mode, decodeOpts(flags))
	if err != nil {
		return "", errtrace.Wrap(mapDecodeErr(err))
	}
	return s, nil
}

func mapDecodeErr(err error) error {
	switch {
	case errors.Is(err, grammar.ErrBadEscape):
		return errorutil.NewWrapperError(ErrBadEncoding, err) //errtrace:skip
	case errors.Is(err, grammar.ErrNotUTF8):
		return errorutil.NewWrapperError(ErrNonUTF8, err) //errtrace:skip
	default:
		return err //errtrace:skip
	}
}

// userinfo holds the sub-parts derived from a raw userinfo component.
type userinfo struct {
	user, password, authParams string
	hasPassword, hasAuthParams bool
}

// parseUserinfo splits the raw userinfo on ":" (ParseHasPassword) and
// ";" (ParseHasAuthParams), then decodes each sub-part independently.
// The split happens before decoding so that escaped delimiters inside a
// sub-part stay data.
func parseUserinfo(raw string, flags ParseFlags) (userinfo, error) {
	var ui userinfo
	rawUser, rawPasswd, rawParams := raw, "", ""
	if flags.has(ParseHasPassword) {
		if k := strings.IndexByte(rawUser, ':'); k >= 0 {
			rawUser, rawPasswd = rawUser[:k], rawUser[k+1:]
			ui.hasPassword = true
		}
	}
	if flags.has(ParseHasAuthParams) {
		// params trail the password when one was split off
		target := &rawUser
		if ui.hasPassword {
			target = &rawPasswd
		}
		if k := strings.IndexByte(*target, ';'); k >= 0 {
			rawParams = (*target)[k+1:]
			*target = (*target)[:k]
			ui.hasAuthParams = true
		}
	}

	opts := decodeOpts(flags)
	var err error
	if ui.user, err = grammar.Decode(rawUser, grammar.ModeDecode, opts); err != nil {
		return userinfo{}, errtrace.Wrap(errorutil.NewWrapperError(ErrBadUser, err))
	}
	if ui.password, err = grammar.Decode(rawPasswd, grammar.ModeDecode, opts); err != nil {
		return userinfo{}, errtrace.Wrap(errorutil.NewWrapperError(ErrBadPassword, err))
	}
	if ui.authParams, err = grammar.Decode(rawParams, grammar.ModeDecode, opts); err != nil {
		return userinfo{}, errtrace.Wrap(errorutil.NewWrapperError(ErrBadAuthParams, err))
	}
	return ui, nil
}

// parseHost extracts a valid hostname or IP address out of the raw host
// component. Bracketed IPv6 literals were already unwrapped by the
// splitter, so any "[" reaching this point is malformed. A textual IP
// address passes through undecoded; percent-encoding one is illegal.
func parseHost(raw string, flags ParseFlags) (string, error) {
	if raw == "" {
		return "", nil
	}
	if strings.HasPrefix(raw, "[") {
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrBadHost, "invalid IP literal %q", raw))
	}
	if net.ParseIP(raw) != nil {
		return raw, nil
	}

	// Host escapes are strict regardless of ParseStrict; HTML5 relaxes
	// the lone "%". The decoded host must be UTF-8 no matter what.
	decoded, err := grammar.Decode(raw, grammar.ModeDecode, grammar.DecodeOptions{
		Strict:             true,
		AllowSinglePercent: flags.has(ParseHTML5),
		UTF8Only:           true,
	})
	if err != nil {
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrBadHost, err))
	}
	if net.ParseIP(decoded) != nil {
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrBadHost, "encoded IP address %q", raw))
	}
	if flags.has(ParseNonDNS) {
		return decoded, nil
	}
	if isASCII(decoded) {
		return decoded, nil
	}
	if flags.has(ParseNoIRI) {
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrBadHost, "non-ASCII host %q forbidden", decoded))
	}
	ace, err := idna.Lookup.ToASCII(decoded)
	if err != nil {
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrBadHost, err))
	}
	return ace, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// parsePort parses the raw port text as a decimal 16-bit integer.
func parsePort(raw string) (uint16, error) {
	for i := 0; i < len(raw); i++ {
		if !grammar.IsDigit(raw[i]) {
			return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrBadPort, "non-numeric port %q", raw))
		}
	}
	v, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrBadPort, "port %q out of range", raw))
	}
	return uint16(v), nil
}
