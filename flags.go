package guri

// ParseFlags is a bitset of switches consulted at the split, normalize
// and resolve stages. Flags recorded on a URI at parse time can be
// swapped later with [URI.Reparse].
type ParseFlags uint32

const (
	// ParseStrict disables the lenient-input heuristics: whitespace
	// pre-cleaning, literal "%" pass-through, last-"@"-wins userinfo
	// detection and the ";"-starts-the-path rule.
	ParseStrict ParseFlags = 1 << iota
	// ParseHTML5 applies HTML5 URL compatibility, which tolerates a
	// single "%" in the host even when escapes are otherwise strict.
	ParseHTML5
	// ParseNoIRI makes a non-ASCII hostname a hard error instead of
	// converting it to its ASCII-compatible (IDNA) form.
	ParseNoIRI
	// ParseHasPassword splits userinfo at the first ":" into user and
	// password.
	ParseHasPassword
	// ParseHasAuthParams splits auth params off userinfo at the first ";".
	ParseHasAuthParams
	// ParseNonDNS accepts any decoded UTF-8 string as the host instead of
	// requiring a DNS-compatible name.
	ParseNonDNS
	// ParseDecoded stores fully decoded path/query/fragment forms rather
	// than percent-normalized ones.
	ParseDecoded
	// ParseUTF8Only fails parsing when decoding any component would
	// produce invalid UTF-8 instead of re-encoding the offending bytes.
	ParseUTF8Only
)

// ParseDefault applies no flags.
const ParseDefault ParseFlags = 0

func (f ParseFlags) has(flag ParseFlags) bool { return f&flag != 0 }

// ToStringFlags controls [URI.Render] output.
type ToStringFlags uint32

const (
	// HidePassword omits the password from the rendered userinfo.
	HidePassword ToStringFlags = 1 << iota
	// HideAuthParams omits the auth params from the rendered userinfo.
	HideAuthParams
)

// ToStringDefault renders every component that is present.
const ToStringDefault ToStringFlags = 0

func (f ToStringFlags) has(flag ToStringFlags) bool { return f&flag != 0 }
