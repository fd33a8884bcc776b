package guri_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/antono/guri"
)

// parts flattens a URI into its component values for comparison.
type parts struct {
	Scheme        string
	User          string
	Password      string
	HasPassword   bool
	AuthParams    string
	HasAuthParams bool
	Host          string
	HasHost       bool
	Port          uint16
	Path          string
	Query         string
	HasQuery      bool
	Fragment      string
	HasFragment   bool
}

func uriParts(u *guri.URI) parts {
	p := parts{
		Scheme:  u.Scheme(),
		User:    u.User(),
		Host:    u.Host(),
		HasHost: u.HasAuthority(),
		Port:    u.Port(),
		Path:    u.Path(),
	}
	p.Password, p.HasPassword = u.Password()
	p.AuthParams, p.HasAuthParams = u.AuthParams()
	p.Query, p.HasQuery = u.Query()
	p.Fragment, p.HasFragment = u.Fragment()
	return p
}

func TestParse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		input   string
		flags   guri.ParseFlags
		want    parts
		wantErr error
	}{
		{
			name:  "simple",
			input: "http://example.com/",
			want:  parts{Scheme: "http", Host: "example.com", HasHost: true, Path: "/"},
		},
		{
			name:  "full",
			input: "https://user@example.com:8443/a/b?q=1#frag",
			want: parts{
				Scheme: "https",
				User:   "user",
				Host:   "example.com", HasHost: true,
				Port:  8443,
				Path:  "/a/b",
				Query: "q=1", HasQuery: true,
				Fragment: "frag", HasFragment: true,
			},
		},
		{
			name:  "normalize decodes unreserved escapes",
			input: "http://h/%7Euser/%61",
			want:  parts{Scheme: "http", Host: "h", HasHost: true, Path: "/~user/a"},
		},
		{
			name:  "normalize uppercases retained escapes",
			input: "http://h/a%2fb?x%3d1",
			want: parts{
				Scheme: "http", Host: "h", HasHost: true,
				Path:  "/a%2Fb",
				Query: "x%3D1", HasQuery: true,
			},
		},
		{
			name:  "decoded stores raw delimiters",
			input: "http://h/a%2Fb?x%3D1",
			flags: guri.ParseDecoded,
			want: parts{
				Scheme: "http", Host: "h", HasHost: true,
				Path:  "/a/b",
				Query: "x=1", HasQuery: true,
			},
		},
		{
			name:  "lenient passes a bare percent through",
			input: "http://h/a%zz",
			want:  parts{Scheme: "http", Host: "h", HasHost: true, Path: "/a%zz"},
		},
		{
			name:    "strict rejects a bare percent",
			input:   "http://h/a%zz",
			flags:   guri.ParseStrict,
			wantErr: guri.ErrBadEncoding,
		},
		{
			name:  "decoded re-encodes invalid bytes",
			input: "http://h/%FF",
			flags: guri.ParseDecoded,
			want:  parts{Scheme: "http", Host: "h", HasHost: true, Path: "/%FF"},
		},
		{
			name:    "utf8only rejects invalid bytes",
			input:   "http://h/%FF",
			flags:   guri.ParseDecoded | guri.ParseUTF8Only,
			wantErr: guri.ErrNonUTF8,
		},
		{
			name:  "whitespace is cleaned in lenient mode",
			input: " http://h/a\nb\t ",
			want:  parts{Scheme: "http", Host: "h", HasHost: true, Path: "/ab"},
		},
		{
			name:  "textual IPv4 host",
			input: "http://192.168.0.1/",
			want:  parts{Scheme: "http", Host: "192.168.0.1", HasHost: true, Path: "/"},
		},
		{
			name:  "IPv6 literal host",
			input: "http://[2001:db8::1]:80/",
			want:  parts{Scheme: "http", Host: "2001:db8::1", HasHost: true, Port: 80, Path: "/"},
		},
		{
			name:    "malformed IP literal",
			input:   "http://[abc]/",
			wantErr: guri.ErrBadHost,
		},
		{
			name:    "percent-encoded IP address",
			input:   "http://192%2E168%2E0%2E1/",
			wantErr: guri.ErrBadHost,
		},
		{
			name:  "non-ASCII host converts to IDNA",
			input: "http://b\u00fccher.de/",
			want:  parts{Scheme: "http", Host: "xn--bcher-kva.de", HasHost: true, Path: "/"},
		},
		{
			name:  "percent-encoded non-ASCII host converts too",
			input: "http://b%C3%BCcher.de/",
			want:  parts{Scheme: "http", Host: "xn--bcher-kva.de", HasHost: true, Path: "/"},
		},
		{
			name:    "noiri forbids non-ASCII hosts",
			input:   "http://b\u00fccher.de/",
			flags:   guri.ParseNoIRI,
			wantErr: guri.ErrBadHost,
		},
		{
			name:  "nondns keeps the decoded host",
			input: "http://b%C3%BCcher.de/",
			flags: guri.ParseNonDNS,
			want:  parts{Scheme: "http", Host: "b\u00fccher.de", HasHost: true, Path: "/"},
		},
		{
			name:    "host escapes are always strict",
			input:   "http://h%/",
			wantErr: guri.ErrBadHost,
		},
		{
			name:  "html5 tolerates a lone percent in the host",
			input: "http://h%/",
			flags: guri.ParseHTML5,
			want:  parts{Scheme: "http", Host: "h%", HasHost: true, Path: "/"},
		},
		{
			name:    "host must decode to UTF-8",
			input:   "http://h%FF/",
			wantErr: guri.ErrBadHost,
		},
		{
			name:  "highest port",
			input: "http://h:65535/",
			want:  parts{Scheme: "http", Host: "h", HasHost: true, Port: 65535, Path: "/"},
		},
		{
			name:    "port out of range",
			input:   "http://h:65536/",
			wantErr: guri.ErrBadPort,
		},
		{
			name:    "non-numeric port",
			input:   "http://h:8a/",
			wantErr: guri.ErrBadPort,
		},
		{
			name:  "trailing colon means no port",
			input: "http://h:/",
			want:  parts{Scheme: "http", Host: "h", HasHost: true, Path: "/"},
		},
		{
			name:  "userinfo is opaque by default",
			input: "http://u:p@h/",
			want:  parts{Scheme: "http", User: "u:p", Host: "h", HasHost: true, Path: "/"},
		},
		{
			name:  "haspassword splits at the colon",
			input: "http://u:p@h/",
			flags: guri.ParseHasPassword,
			want: parts{
				Scheme: "http",
				User:   "u", Password: "p", HasPassword: true,
				Host: "h", HasHost: true,
				Path: "/",
			},
		},
		{
			name:  "auth params trail the password",
			input: "http://u:p;x=1@h/",
			flags: guri.ParseHasPassword | guri.ParseHasAuthParams,
			want: parts{
				Scheme: "http",
				User:   "u", Password: "p", HasPassword: true,
				AuthParams: "x=1", HasAuthParams: true,
				Host: "h", HasHost: true,
				Path: "/",
			},
		},
		{
			name:  "auth params trail the user without haspassword",
			input: "http://u:p;x=1@h/",
			flags: guri.ParseHasAuthParams,
			want: parts{
				Scheme:     "http",
				User:       "u:p",
				AuthParams: "x=1", HasAuthParams: true,
				Host: "h", HasHost: true,
				Path: "/",
			},
		},
		{
			name:  "escaped colon stays inside the user",
			input: "http://u%3Ap@h/",
			flags: guri.ParseHasPassword,
			want:  parts{Scheme: "http", User: "u:p", Host: "h", HasHost: true, Path: "/"},
		},
		{
			name:    "relative reference without base",
			input:   "/a/b",
			wantErr: guri.ErrNotAbsolute,
		},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			u, err := guri.Parse(c.input, c.flags)
			if c.wantErr != nil {
				if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
					t.Fatalf("guri.Parse(%q, %v) error mismatch\ndiff (-got +want):\n%v", c.input, c.flags, diff)
				}
				return
			}
			if err != nil {
				t.Fatalf("guri.Parse(%q, %v) failed: %s", c.input, c.flags, err)
			}
			if diff := cmp.Diff(uriParts(u), c.want); diff != "" {
				t.Errorf("guri.Parse(%q, %v) mismatch\ndiff (-got +want):\n%v", c.input, c.flags, diff)
			}
			if got := u.Flags(); got != c.flags {
				t.Errorf("guri.Parse(%q, %v) flags = %v", c.input, c.flags, got)
			}
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	// an unmodified URI renders back to its (whitespace-cleaned) input,
	// and re-parsing the rendering is an identity
	inputs := []string{
		"http://example.com/",
		"http://user@example.com:8080/a%2Fb?q=1#f",
		"HTTPS://Example.COM/Path",
		"http://[2001:db8::1]:8080/x",
		"mailto:user@example.com",
		"http://h/a%zz",
		"urn:oasis:names:tc",
	}
	for _, in := range inputs {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			u, err := guri.Parse(in, guri.ParseDefault)
			if err != nil {
				t.Fatalf("guri.Parse(%q) failed: %s", in, err)
			}
			out := u.String()
			u2, err := guri.Parse(out, guri.ParseDefault)
			if err != nil {
				t.Fatalf("guri.Parse(%q) failed: %s", out, err)
			}
			if !u.Equal(u2) {
				t.Errorf("re-parse of %q is not equal: %q", in, out)
			}
		})
	}
}

func TestParseHostPort(t *testing.T) {
	t.Parallel()

	scheme, host, port, err := guri.ParseHostPort("https://example.com:8443/x", guri.ParseDefault)
	if err != nil {
		t.Fatalf("guri.ParseHostPort failed: %s", err)
	}
	if scheme != "https" || host != "example.com" || port != 8443 {
		t.Errorf("guri.ParseHostPort = %q, %q, %d", scheme, host, port)
	}

	if _, _, _, err = guri.ParseHostPort("//h/x", guri.ParseDefault); err == nil {
		t.Error("guri.ParseHostPort accepted a scheme-less input")
	}
}
