package oauth1

import "strings"

const upperhex = "0123456789ABCDEF"

// PercentEncode escapes s per RFC 3986 section 2.1.
//
// Every byte except the unreserved characters A-Z a-z 0-9 - . _ ~ is written
// as %XX with uppercase hex digits. Multi-byte UTF-8 sequences are escaped
// byte by byte, and space becomes "%20".
func PercentEncode(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !unreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}
