package grammar

// RFC 3986 character classes used by the codec and by per-component
// re-encoding on render.

// IsAlpha checks the ALPHA rule.
func IsAlpha(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// IsDigit checks the DIGIT rule.
func IsDigit(c byte) bool { return '0' <= c && c <= '9' }

// IsSchemeChar checks a non-initial scheme character.
func IsSchemeChar(c byte) bool {
	return IsAlpha(c) || IsDigit(c) || c == '+' || c == '-' || c == '.'
}

// IsCharUnreserved checks the unreserved rule.
func IsCharUnreserved(c byte) bool {
	return IsAlpha(c) || IsDigit(c) || c == '-' || c == '.' || c == '_' || c == '~'
}

var subDelimChars = map[byte]bool{
	'!':  true,
	'$':  true,
	'&':  true,
	'\'': true,
	'(':  true,
	')':  true,
	'*':  true,
	'+':  true,
	',':  true,
	';':  true,
	'=':  true,
}

// IsSubDelimChar checks the sub-delims rule.
func IsSubDelimChar(c byte) bool { return subDelimChars[c] }

// IsUserChar checks a character valid inside the user sub-part of userinfo,
// i.e. unreserved / sub-delims without the ":" and ";" sub-part delimiters.
func IsUserChar(c byte) bool {
	return IsCharUnreserved(c) || (subDelimChars[c] && c != ';')
}

// IsRegNameChar checks a registered-name host character.
func IsRegNameChar(c byte) bool {
	return IsCharUnreserved(c) || subDelimChars[c]
}

// IsPathChar checks the pchar rule plus "/".
func IsPathChar(c byte) bool {
	return IsCharUnreserved(c) || subDelimChars[c] || c == ':' || c == '@' || c == '/'
}

// IsQueryChar checks the query rule (also used for fragments).
func IsQueryChar(c byte) bool { return IsPathChar(c) || c == '?' }

const upperhex = "0123456789ABCDEF"

func ishex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
