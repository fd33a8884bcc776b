package guri

import (
	"net"
	"strings"

	"github.com/antono/guri/internal/grammar"
	"github.com/antono/guri/internal/util"
)

// RawParts holds the still-percent-encoded substrings of a URI as
// divided by [Split]. Every component except Path is optional; its Has*
// flag reports presence. Path is always present and may be the empty
// string.
type RawParts struct {
	Scheme   string
	Userinfo string
	Host     string
	Port     string
	Path     string
	Query    string
	Fragment string

	HasScheme   bool
	HasUserinfo bool
	HasHost     bool
	HasPort     bool
	HasQuery    bool
	HasFragment bool
}

// Split divides s into raw URI components according to the generic
// grammar of RFC 3986 without decoding anything. It always succeeds:
// malformed input yields surprising but well-defined pieces, and errors
// surface later when the components are normalized.
//
// In lenient mode (strict=false) the userinfo extends to the last "@" of
// the authority, and a ";" in the host span after it starts the path
// (legacy matrix-parameter form). Strict mode cuts userinfo at the
// first "@".
//
// A well-formed bracketed IPv6 literal is returned without its brackets;
// any other bracketed host is kept verbatim for the normalizer to reject.
func Split[T ~string | ~[]byte](s T, strict bool) RawParts {
	return split(string(s), strict)
}

func split(s string, strict bool) RawParts {
	var rp RawParts

	// Scheme: ALPHA (ALPHA / DIGIT / "+" / "-" / ".")* ":"
	rest := s
	if len(s) > 0 && grammar.IsAlpha(s[0]) {
		j := 1
		for j < len(s) && grammar.IsSchemeChar(s[j]) {
			j++
		}
		if j < len(s) && s[j] == ':' {
			rp.Scheme, rp.HasScheme = util.LCase(s[:j]), true
			rest = s[j+1:]
		}
	}

	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		authEnd := len(rest)
		if k := strings.IndexAny(rest, "/?#"); k >= 0 {
			authEnd = k
		}
		auth := rest[:authEnd]
		rest = rest[authEnd:]

		host := auth
		at := strings.LastIndexByte(auth, '@')
		if strict {
			at = strings.IndexByte(auth, '@')
		}
		if at >= 0 {
			rp.Userinfo, rp.HasUserinfo = auth[:at], true
			host = auth[at+1:]
		}

		// a ";" may legally appear inside userinfo, so the matrix cut
		// only applies to the host span
		if !strict {
			if k := strings.IndexByte(host, ';'); k >= 0 {
				rest = host[k:] + rest
				host = host[:k]
			}
		}

		hostEnd, colon := len(host), -1
		if strings.HasPrefix(host, "[") {
			if rb := strings.IndexByte(host, ']'); rb >= 0 {
				hostEnd = rb + 1
			}
			if hostEnd < len(host) && host[hostEnd] == ':' {
				colon = hostEnd
			}
		} else if k := strings.IndexByte(host, ':'); k >= 0 {
			colon, hostEnd = k, k
		}
		rp.Host, rp.HasHost = unwrapIPLiteral(host[:hostEnd]), true
		// a trailing colon carries no port
		if colon >= 0 && colon != len(host)-1 {
			rp.Port, rp.HasPort = host[colon+1:], true
		}
	}

	if k := strings.IndexByte(rest, '#'); k >= 0 {
		rp.Fragment, rp.HasFragment = rest[k+1:], true
		rest = rest[:k]
	}
	if k := strings.IndexByte(rest, '?'); k >= 0 {
		rp.Query, rp.HasQuery = rest[k+1:], true
		rest = rest[:k]
	}
	rp.Path = rest
	return rp
}

// unwrapIPLiteral strips the brackets from a well-formed IPv6 literal.
// Anything else bracket-like is returned untouched so that parseHost can
// reject it.
func unwrapIPLiteral(host string) string {
	if len(host) < 2 || host[0] != '[' || host[len(host)-1] != ']' {
		return host
	}
	inner := host[1 : len(host)-1]
	if !strings.Contains(inner, ":") || net.ParseIP(inner) == nil {
		return host
	}
	return inner
}
