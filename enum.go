package stack

import "strings"

// enumTable is the single source of wire tokens for one option family. The
// index is the enum value; index 0 is the unset value and has no token.
type enumTable[E ~int] []string

func (t enumTable[E]) token(e E) (string, bool) {
	if e <= 0 || int(e) >= len(t) {
		return "", false
	}
	return t[e], true
}

// String returns the token of e or "" when e has none.
func (t enumTable[E]) String(e E) string {
	s, _ := t.token(e)
	return s
}

// parse maps a token back to its enum value, ignoring case.
func (t enumTable[E]) parse(s string) (E, bool) {
	for i := 1; i < len(t); i++ {
		if strings.EqualFold(t[i], s) {
			return E(i), true
		}
	}
	return 0, false
}
