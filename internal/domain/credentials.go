package domain

import (
	"sort"
	"strings"
)

// MarkerCookie must be present in every non-empty CredentialSet.
const MarkerCookie = "__Secure-1PSID"

// CredentialSet maps cookie name to value.
type CredentialSet map[string]string

func (c CredentialSet) Empty() bool {
	return len(c) == 0
}

func (c CredentialSet) HasMarker() bool {
	return c[MarkerCookie] != ""
}

// CookieHeader renders the set as a Cookie header value with names in sorted order.
func (c CredentialSet) CookieHeader() string {
	names := c.Names()
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+c[name])
	}

	return strings.Join(parts, "; ")
}

func (c CredentialSet) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func (c CredentialSet) Clone() CredentialSet {
	if c == nil {
		return nil
	}

	out := make(CredentialSet, len(c))
	for name, value := range c {
		out[name] = value
	}

	return out
}
