package guri

import (
	"braces.dev/errtrace"

	"github.com/antono/guri/internal/util"
)

// URI is a parsed URI holding both the raw (still percent-encoded)
// component forms produced by the splitter and their normalized or
// decoded counterparts. Raw forms are cached so that rendering an
// untouched URI reproduces the original encoding and [URI.Reparse] can
// re-derive components without re-splitting.
//
// A URI is not safe for concurrent mutation; concurrent readers of an
// unmodified value are safe.
type URI struct {
	flags ParseFlags

	scheme string

	hasUserinfo   bool
	rawUserinfo   string
	rawUserinfoOK bool
	user          string
	password      string
	authParams    string
	hasPassword   bool
	hasAuthParams bool

	hasHost   bool
	rawHost   string
	rawHostOK bool
	host      string

	port uint16

	rawPath   string
	rawPathOK bool
	path      string

	hasQuery   bool
	rawQuery   string
	rawQueryOK bool
	query      string

	hasFragment   bool
	rawFragment   string
	rawFragmentOK bool
	fragment      string
}

// Flags returns the parse flags the URI was last parsed or reparsed with.
func (u *URI) Flags() ParseFlags { return u.flags }

// Scheme returns the lowercase scheme, or "" for a relative reference.
func (u *URI) Scheme() string { return u.scheme }

// SetScheme replaces the scheme, lowercasing it.
func (u *URI) SetScheme(scheme string) { u.scheme = util.LCase(scheme) }

// IsAbsolute reports whether the URI has a scheme.
func (u *URI) IsAbsolute() bool { return u.scheme != "" }

// Userinfo returns the encoded userinfo component and whether it is
// present. A cached raw form is returned verbatim; otherwise the
// component is re-encoded from its decoded sub-parts.
func (u *URI) Userinfo() (string, bool) {
	if !u.userinfoPresent() {
		return "", false
	}
	if u.rawUserinfoOK {
		return u.rawUserinfo, true
	}
	return u.encodeUserinfo(ToStringDefault), true
}

// SetUserinfo replaces the encoded userinfo component and re-derives
// user, password and auth params according to the current flags. An
// error leaves the URI unchanged.
func (u *URI) SetUserinfo(raw string) error {
	ui, err := parseUserinfo(raw, u.flags)
	if err != nil {
		return errtrace.Wrap(err)
	}
	u.hasUserinfo = true
	u.rawUserinfo, u.rawUserinfoOK = raw, true
	u.setUserinfoParts(ui)
	return nil
}

func (u *URI) setUserinfoParts(ui userinfo) {
	u.user, u.password, u.authParams = ui.user, ui.password, ui.authParams
	u.hasPassword, u.hasAuthParams = ui.hasPassword, ui.hasAuthParams
}

func (u *URI) userinfoPresent() bool {
	return u.hasUserinfo || u.user != "" || u.hasPassword || u.hasAuthParams
}

// User returns the decoded user sub-part of userinfo.
func (u *URI) User() string { return u.user }

// SetUser replaces the decoded user, dropping the cached raw userinfo.
func (u *URI) SetUser(user string) {
	u.user = user
	u.hasUserinfo = true
	u.rawUserinfoOK = false
}

// Password returns the decoded password and whether one is present.
// Passwords exist only when parsed with ParseHasPassword or set here.
func (u *URI) Password() (string, bool) { return u.password, u.hasPassword }

// SetPassword replaces the decoded password, dropping the cached raw
// userinfo.
func (u *URI) SetPassword(password string) {
	u.password = password
	u.hasUserinfo = true
	u.hasPassword = true
	u.rawUserinfoOK = false
}

// AuthParams returns the decoded auth params and whether they are present.
func (u *URI) AuthParams() (string, bool) { return u.authParams, u.hasAuthParams }

// SetAuthParams replaces the decoded auth params, dropping the cached
// raw userinfo.
func (u *URI) SetAuthParams(params string) {
	u.authParams = params
	u.hasUserinfo = true
	u.hasAuthParams = true
	u.rawUserinfoOK = false
}

// Host returns the decoded (or ASCII-converted) hostname, or the bare IP
// address without brackets.
func (u *URI) Host() string { return u.host }

// HasAuthority reports whether the URI carries a "//" authority.
func (u *URI) HasAuthority() bool { return u.hasHost }

// SetHost replaces the decoded host. An IPv6 address must be given
// without brackets; they are restored on render.
func (u *URI) SetHost(host string) {
	u.host = host
	u.hasHost = true
	u.rawHostOK = false
}

// Port returns the port, with 0 meaning unspecified.
func (u *URI) Port() uint16 { return u.port }

// SetPort replaces the port. 0 removes it.
func (u *URI) SetPort(port uint16) { u.port = port }

// Path returns the normalized (or, with ParseDecoded, decoded) path.
// The path is always present and may be empty.
func (u *URI) Path() string { return u.path }

// SetPath replaces the path, dropping the cached raw form.
func (u *URI) SetPath(path string) {
	u.path = path
	u.rawPathOK = false
}

// Query returns the normalized query and whether one is present.
func (u *URI) Query() (string, bool) { return u.query, u.hasQuery }

// SetQuery replaces the query, dropping the cached raw form.
func (u *URI) SetQuery(query string) {
	u.query = query
	u.hasQuery = true
	u.rawQueryOK = false
}

// Fragment returns the normalized fragment and whether one is present.
func (u *URI) Fragment() (string, bool) { return u.fragment, u.hasFragment }

// SetFragment replaces the fragment, dropping the cached raw form.
func (u *URI) SetFragment(fragment string) {
	u.fragment = fragment
	u.hasFragment = true
	u.rawFragmentOK = false
}

// Reparse re-derives the host and userinfo interpretation from their
// cached raw forms under a new flag set, without re-splitting. Fields
// whose raw form was invalidated by a setter keep their current decoded
// values. An error leaves the URI unchanged.
func (u *URI) Reparse(flags ParseFlags) error {
	var (
		host    string
		ui      userinfo
		err     error
		gotHost bool
		gotUI   bool
	)
	if u.rawHostOK {
		if host, err = parseHost(u.rawHost, flags); err != nil {
			return errtrace.Wrap(err)
		}
		gotHost = true
	}
	if u.rawUserinfoOK {
		if ui, err = parseUserinfo(u.rawUserinfo, flags); err != nil {
			return errtrace.Wrap(err)
		}
		gotUI = true
	}

	if gotHost {
		u.host = host
	}
	if gotUI {
		u.setUserinfoParts(ui)
	}
	u.flags = flags
	return nil
}

// Clone returns a deep copy of the URI.
func (u *URI) Clone() *URI {
	if u == nil {
		return nil
	}
	u2 := *u
	return &u2
}

// Equal compares this URI with another for equality of component
// values. Hosts compare case-insensitively, everything else exactly.
func (u *URI) Equal(val any) bool {
	var other *URI
	switch v := val.(type) {
	case URI:
		other = &v
	case *URI:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}

	return u.scheme == other.scheme &&
		util.EqFold(u.host, other.host) &&
		u.hasHost == other.hasHost &&
		u.port == other.port &&
		u.user == other.user &&
		u.password == other.password &&
		u.authParams == other.authParams &&
		u.hasPassword == other.hasPassword &&
		u.hasAuthParams == other.hasAuthParams &&
		u.path == other.path &&
		u.query == other.query &&
		u.hasQuery == other.hasQuery &&
		u.fragment == other.fragment &&
		u.hasFragment == other.hasFragment
}

// MarshalText implements [encoding.TextMarshaler].
func (u *URI) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *URI) UnmarshalText(text []byte) error {
	u1, err := Parse(text, ParseDefault)
	if err != nil {
		*u = URI{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}
