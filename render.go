package guri

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/antono/guri/internal/grammar"
	"github.com/antono/guri/internal/ioutil"
	"github.com/antono/guri/internal/util"
)

func shouldEscapeUserChar(c byte) bool { return !grammar.IsUserChar(c) }

func shouldEscapeHostChar(c byte) bool { return !grammar.IsRegNameChar(c) }

func shouldEscapePathChar(c byte) bool { return !grammar.IsPathChar(c) }

func shouldEscapeQueryChar(c byte) bool { return !grammar.IsQueryChar(c) }

// RenderTo writes the URI to the provided writer. Components whose raw
// encoding is still cached are written verbatim; mutated components are
// re-encoded with their per-component character classes. IPv6 hosts are
// re-bracketed and a nonzero port is appended as ":port".
func (u *URI) RenderTo(w io.Writer, flags ToStringFlags) (num int, err error) {
	if u == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	if u.scheme != "" {
		cw.Print(u.scheme, ":")
	}
	if u.hasHost {
		cw.Print("//")
		if u.userinfoPresent() {
			useRaw := u.rawUserinfoOK &&
				!(flags.has(HidePassword) && u.hasPassword) &&
				!(flags.has(HideAuthParams) && u.hasAuthParams)
			if useRaw {
				cw.Print(u.rawUserinfo)
			} else {
				cw.Print(u.encodeUserinfo(flags))
			}
			cw.Print("@")
		}

		host := u.host
		if u.rawHostOK {
			host = u.rawHost
		}
		switch {
		case strings.Contains(host, ":"):
			cw.Print("[", host, "]")
		case u.rawHostOK:
			cw.Print(host)
		default:
			cw.Print(grammar.Escape(host, shouldEscapeHostChar, false))
		}

		if u.port != 0 {
			cw.Print(":", strconv.Itoa(int(u.port)))
		}
	}

	// percent-normalized forms legitimately contain escapes; fully
	// decoded ones do not, so a literal "%" in them must be escaped
	keepEscapes := !u.flags.has(ParseDecoded)
	if u.rawPathOK {
		cw.Print(u.rawPath)
	} else {
		cw.Print(grammar.Escape(u.path, shouldEscapePathChar, keepEscapes))
	}
	if u.hasQuery {
		cw.Print("?")
		if u.rawQueryOK {
			cw.Print(u.rawQuery)
		} else {
			cw.Print(grammar.Escape(u.query, shouldEscapeQueryChar, keepEscapes))
		}
	}
	if u.hasFragment {
		cw.Print("#")
		if u.rawFragmentOK {
			cw.Print(u.rawFragment)
		} else {
			cw.Print(grammar.Escape(u.fragment, shouldEscapeQueryChar, keepEscapes))
		}
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the string representation of the URI.
func (u *URI) Render(flags ToStringFlags) string {
	if u == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb, flags) //nolint:errcheck
	return sb.String()
}

// String returns the string representation of the URI.
func (u *URI) String() string {
	if u == nil {
		return ""
	}
	return u.Render(ToStringDefault)
}

// encodeUserinfo re-encodes the userinfo component from its decoded
// sub-parts, honoring the hide flags.
func (u *URI) encodeUserinfo(flags ToStringFlags) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	sb.WriteString(grammar.Escape(u.user, shouldEscapeUserChar, false))
	if u.hasPassword && !flags.has(HidePassword) {
		sb.WriteString(":")
		sb.WriteString(grammar.Escape(u.password, shouldEscapeUserChar, false))
	}
	if u.hasAuthParams && !flags.has(HideAuthParams) {
		sb.WriteString(";")
		sb.WriteString(grammar.Escape(u.authParams, shouldEscapeUserChar, false))
	}
	return sb.String()
}

// Format implements fmt.Formatter for custom formatting of the URI.
func (u *URI) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			u.RenderTo(f, ToStringDefault) //nolint:errcheck
			return
		}
		fmt.Fprint(f, u.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	default:
		type hideMethods URI
		type URI hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*URI)(u))
		return
	}
}
