package grammar_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/antono/guri/internal/grammar"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		input   string
		mode    grammar.DecodeMode
		opts    grammar.DecodeOptions
		want    string
		wantErr error
	}{
		{
			name:  "plain text",
			input: "abc",
			mode:  grammar.ModeDecode,
			want:  "abc",
		},
		{
			name:  "decode everything",
			input: "a%2Fb%7E%63",
			mode:  grammar.ModeDecode,
			want:  "a/b~c",
		},
		{
			name:  "normalize keeps reserved escapes",
			input: "a%2fb%7E%63",
			mode:  grammar.ModeNormalize,
			want:  "a%2Fb~c",
		},
		{
			name:  "lenient bare percent passes through",
			input: "100%",
			mode:  grammar.ModeDecode,
			want:  "100%",
		},
		{
			name:  "lenient half escape passes through",
			input: "a%zq",
			mode:  grammar.ModeDecode,
			want:  "a%zq",
		},
		{
			name:    "strict bare percent fails",
			input:   "100%",
			mode:    grammar.ModeDecode,
			opts:    grammar.DecodeOptions{Strict: true},
			wantErr: grammar.ErrBadEscape,
		},
		{
			name:  "strict with single-percent allowance",
			input: "100%",
			mode:  grammar.ModeDecode,
			opts:  grammar.DecodeOptions{Strict: true, AllowSinglePercent: true},
			want:  "100%",
		},
		{
			name:  "decoded utf8",
			input: "%C3%A9",
			mode:  grammar.ModeDecode,
			want:  "é",
		},
		{
			name:  "invalid byte is re-encoded",
			input: "a%FFb",
			mode:  grammar.ModeDecode,
			want:  "a%FFb",
		},
		{
			name:    "utf8only rejects invalid bytes",
			input:   "a%FFb",
			mode:    grammar.ModeDecode,
			opts:    grammar.DecodeOptions{UTF8Only: true},
			wantErr: grammar.ErrNotUTF8,
		},
		{
			name:  "truncated multibyte sequence is re-encoded",
			input: "%C3x",
			mode:  grammar.ModeDecode,
			want:  "%C3x",
		},
		{
			name:  "normalize does not touch invalid escapes of reserved bytes",
			input: "%FF",
			mode:  grammar.ModeNormalize,
			want:  "%FF",
		},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := grammar.Decode(c.input, c.mode, c.opts)
			if c.wantErr != nil {
				if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
					t.Fatalf("grammar.Decode(%q) error mismatch\ndiff (-got +want):\n%v", c.input, diff)
				}
				return
			}
			if err != nil {
				t.Fatalf("grammar.Decode(%q) failed: %s", c.input, err)
			}
			if got != c.want {
				t.Errorf("grammar.Decode(%q) = %q, expected %q", c.input, got, c.want)
			}
		})
	}
}

func TestEnsureUTF8(t *testing.T) {
	t.Parallel()

	got, err := grammar.EnsureUTF8([]byte("a\xffb\xc3\xa9"), false)
	if err != nil {
		t.Fatalf("grammar.EnsureUTF8 failed: %s", err)
	}
	if got != "a%FFbé" {
		t.Errorf("grammar.EnsureUTF8 = %q", got)
	}

	if _, err = grammar.EnsureUTF8([]byte("a\xffb"), true); err == nil {
		t.Error("grammar.EnsureUTF8 accepted invalid input in utf8-only mode")
	}
}

func TestEscape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		input       string
		fn          func(c byte) bool
		keepEscapes bool
		want        string
	}{
		{
			name:  "default escapes non-unreserved",
			input: "a b/c",
			want:  "a%20b%2Fc",
		},
		{
			name:        "existing escapes are kept on encoded input",
			input:       "a%20b c",
			keepEscapes: true,
			want:        "a%20b%20c",
		},
		{
			name:  "literal percent run in decoded input is escaped",
			input: "a%20b c",
			want:  "a%2520b%20c",
		},
		{
			name:        "broken escape is escaped itself",
			input:       "a%2 b",
			keepEscapes: true,
			want:        "a%252%20b",
		},
		{
			name:  "custom class",
			input: "a/b c",
			fn:    func(c byte) bool { return c == ' ' },
			want:  "a/b%20c",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got := grammar.Escape(c.input, c.fn, c.keepEscapes)
			if got != c.want {
				t.Errorf("grammar.Escape(%q) = %q, expected %q", c.input, got, c.want)
			}
		})
	}
}
