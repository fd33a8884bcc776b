package guri

//go:generate go tool errtrace -w .

// Error is the type of all parse errors reported by this package.
// Match with errors.Is against the sentinel constants below; wrapped
// errors carry additional context about the failing component.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrBadScheme is reserved: the splitter treats anything that is not
	// a well-formed scheme as scheme-less instead of failing.
	ErrBadScheme Error = "bad scheme"
	// ErrBadEncoding reports a malformed percent-escape under ParseStrict.
	ErrBadEncoding Error = "bad percent-encoding"
	// ErrNonUTF8 reports percent-decoded bytes that are not valid UTF-8
	// under ParseUTF8Only.
	ErrNonUTF8 Error = "invalid UTF-8"
	// ErrBadHost reports a malformed IP literal, a percent-encoded IP
	// address, a non-ASCII host under ParseNoIRI, or a non-UTF-8 host.
	ErrBadHost Error = "bad host"
	// ErrBadPort reports a non-numeric or out-of-range port.
	ErrBadPort Error = "bad port"
	// ErrBadUser reports a decoding failure in the user sub-part of userinfo.
	ErrBadUser Error = "bad user"
	// ErrBadPassword reports a decoding failure in the password sub-part.
	ErrBadPassword Error = "bad password"
	// ErrBadAuthParams reports a decoding failure in the auth-params sub-part.
	ErrBadAuthParams Error = "bad auth params"
	// ErrNotAbsolute reports a relative reference with no base to resolve
	// against, or a base that itself has no scheme.
	ErrNotAbsolute Error = "URI is not absolute"
	// ErrBadParams reports a parameter chunk without a "=" separator.
	ErrBadParams Error = "bad params"
)
