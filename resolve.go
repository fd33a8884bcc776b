package guri

import (
	"bytes"
	"strings"
)

// removeDotSegments implements the "Remove Dot Segments" algorithm from
// RFC 3986 section 5.2.4, reading the input left to right into a fresh
// output buffer. Each step consumes input and the ".." pop never removes
// more than was appended, so the whole pass is O(len(path)).
func removeDotSegments(path string) string {
	if path == "" {
		return ""
	}

	var out []byte
	in := path
	for len(in) > 0 {
		switch {
		case strings.HasPrefix(in, "../"):
			in = in[3:]
		case strings.HasPrefix(in, "./"):
			in = in[2:]
		case strings.HasPrefix(in, "/./"):
			in = in[2:]
		case in == "/.":
			in = "/"
		case strings.HasPrefix(in, "/../"):
			in = in[3:]
			out = popSegment(out)
		case in == "/..":
			in = "/"
			out = popSegment(out)
		case in == "." || in == "..":
			in = ""
		default:
			i := 0
			if in[0] == '/' {
				i = 1
			}
			if j := strings.IndexByte(in[i:], '/'); j >= 0 {
				i += j
			} else {
				i = len(in)
			}
			out = append(out, in[:i]...)
			in = in[i:]
		}
	}
	return string(out)
}

func popSegment(out []byte) []byte {
	if i := bytes.LastIndexByte(out, '/'); i >= 0 {
		return out[:i]
	}
	return out[:0]
}

// resolve merges u, parsed from a relative reference, with base per
// RFC 3986 section 5.2.2, mutating u in place. base must be absolute.
func (u *URI) resolve(base *URI) {
	if u.scheme != "" {
		u.normalizePath()
		return
	}

	u.scheme = base.scheme
	if u.hasHost {
		u.normalizePath()
		return
	}

	if u.path == "" {
		u.path = base.path
		u.rawPath, u.rawPathOK = base.rawPath, base.rawPathOK
		if !u.hasQuery {
			u.query, u.hasQuery = base.query, base.hasQuery
			u.rawQuery, u.rawQueryOK = base.rawQuery, base.rawQueryOK
		}
	} else if u.path[0] == '/' {
		u.normalizePath()
	} else {
		// replace the last segment of the base path
		if last := strings.LastIndexByte(base.path, '/'); last >= 0 {
			u.path = base.path[:last+1] + u.path
		} else if base.hasHost && base.path == "" {
			u.path = "/" + u.path
		}
		u.rawPathOK = false
		u.path = removeDotSegments(u.path)
	}

	u.hasUserinfo = base.hasUserinfo
	u.rawUserinfo, u.rawUserinfoOK = base.rawUserinfo, base.rawUserinfoOK
	u.user, u.password, u.authParams = base.user, base.password, base.authParams
	u.hasPassword, u.hasAuthParams = base.hasPassword, base.hasAuthParams
	u.hasHost = base.hasHost
	u.host = base.host
	u.rawHost, u.rawHostOK = base.rawHost, base.rawHostOK
	u.port = base.port
}

// normalizePath applies dot-segment removal in place, dropping the raw
// path cache when the result differs from it.
func (u *URI) normalizePath() {
	if p := removeDotSegments(u.path); p != u.path {
		u.path, u.rawPathOK = p, false
	}
}
