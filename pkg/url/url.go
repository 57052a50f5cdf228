// Copyright 2025 The StakeCore Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package url

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"net/url"
	"path"
	"strings"
	"unicode/utf8"
)

// URL is a StakeCore ledger URL.
type URL struct {
	Authority string
	Path      string

	memoize urlMemoize
}

type urlMemoize struct {
	str       string
	accountID [32]byte
}

// Parse parses the string as a ledger URL. The scheme may be omitted, in
// which case `stk://` will be added, but if present it must be `stk`. The
// hostname must be non-empty. User info, queries, and fragments are not
// allowed.
func Parse(s string) (*URL, error) {
	u, err := url.Parse(s)
	if err == nil && u.Scheme == "" {
		u, err = url.Parse("stk://" + s)
	}
	if err != nil {
		return nil, err
	}

	if u.Scheme != "stk" {
		return nil, wrongScheme(s)
	}

	if u.Host == "" || u.Host[0] == ':' {
		return nil, missingHost(s)
	}

	if u.User != nil || u.RawQuery != "" || u.Fragment != "" {
		return nil, unsupportedPart(s)
	}

	v := new(URL)
	v.Authority = u.Host
	v.Path = u.Path
	return v, nil
}

// MustParse calls Parse and panics if it returns an error.
func MustParse(s string) *URL {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

func splitColon(s string) (string, string) {
	t := strings.SplitN(s, ":", 2)
	if len(t) == 1 {
		return t[0], ""
	}
	return t[0], t[1]
}

// copy returns a copy of the url.
func (u *URL) copy() *URL {
	v := *u
	v.memoize = urlMemoize{}
	return &v
}

func (u *URL) format(encode bool) string {
	var buf strings.Builder

	buf.WriteString("stk://")
	buf.WriteString(u.Authority)

	p := normalizePath(u.Path)
	for len(p) > 0 {
		buf.WriteByte('/')
		i := strings.IndexByte(p[1:], '/') + 1
		if i <= 0 {
			if encode {
				buf.WriteString(url.PathEscape(p[1:]))
			} else {
				buf.WriteString(p[1:])
			}
			break
		}

		if encode {
			buf.WriteString(url.PathEscape(p[1:i]))
		} else {
			buf.WriteString(p[1:i])
		}
		p = p[i:]
	}

	return buf.String()
}

// String reassembles the URL into a valid URL string. See net/url.URL.String().
func (u *URL) String() string {
	if u.memoize.str != "" {
		return u.memoize.str
	}

	u.memoize.str = u.format(true)
	return u.memoize.str
}

// RawString reassembles the URL into a valid URL string without encoding any
// component.
func (u *URL) RawString() string {
	return u.format(false)
}

// ShortString returns String without the scheme prefix.
func (u *URL) ShortString() string {
	return u.String()[6:]
}

// ValidUTF8 verifies that all URL components are valid UTF-8 strings.
func (u *URL) ValidUTF8() bool {
	return utf8.ValidString(u.Authority) && utf8.ValidString(u.Path)
}

// Hostname returns the hostname from the authority component.
func (u *URL) Hostname() string {
	s, _ := splitColon(u.Authority)
	return s
}

// Compare returns an integer comparing two URLs as lower case strings. The
// result will be 0 if u == v, -1 if u < v, and +1 if u > v.
func (u *URL) Compare(v *URL) int {
	uStr := strings.ToLower(u.String())
	vStr := strings.ToLower(v.String())
	switch {
	case uStr < vStr:
		return -1
	case uStr > vStr:
		return +1
	default:
		return 0
	}
}

func id(s string) [32]byte {
	s = strings.ToLower(s)
	return sha256.Sum256([]byte(s))
}

func normalizePath(s string) string {
	s = strings.Trim(s, "/")
	if s == "" {
		return ""
	}
	return "/" + s
}

// RootIdentity returns a copy of the URL with an empty path.
func (u *URL) RootIdentity() *URL {
	return &URL{Authority: u.Authority}
}

// Identity returns a copy of the URL with the last section cut off the path.
func (u *URL) Identity() *URL {
	v, _ := u.Parent()
	return v
}

// IsRootIdentity returns true if the URL is a root identity.
func (u *URL) IsRootIdentity() bool {
	return u.Path == "" || u.Path == "/"
}

// Parent gets the URL's parent path, or returns the original URL and false.
func (u *URL) Parent() (*URL, bool) {
	v := new(URL)
	v.Authority = u.Authority
	v.Path = strings.TrimSuffix(u.Path, "/")
	if len(v.Path) == 0 {
		return v, false
	}
	slashIdx := strings.LastIndex(v.Path, "/")
	if slashIdx == -1 {
		v.Path = ""
	} else {
		v.Path = v.Path[:slashIdx]
	}
	return v, true
}

// ParentOf returns true if U is the parent of V.
func (u *URL) ParentOf(v *URL) bool {
	v, ok := v.Parent()
	return ok && u.Equal(v)
}

// LocalTo returns true if U is local to V, that is if they have the same root
// identity.
func (u *URL) LocalTo(v *URL) bool {
	return u.RootIdentity().Equal(v.RootIdentity())
}

// IdentityAccountID constructs an account identifier from the lower case
// hostname. The port is not included.
//
//	ID = Hash(LowerCase(u.Host()))
func (u *URL) IdentityAccountID() []byte {
	c := id(u.Hostname())
	return c[:]
}

// AccountID constructs an account identifier from the lower case hostname and
// path. The port is not included. If the path does not begin with `/`, `/` is
// added between the hostname and the path.
//
//	ID = Hash(LowerCase(Sprintf("%s/%s", u.Host(), u.Path)))
func (u *URL) AccountID() []byte {
	c := u.AccountID32()
	return c[:]
}

// AccountID32 returns AccountID as a [32]byte.
func (u *URL) AccountID32() [32]byte {
	if u.memoize.accountID == [32]byte{} {
		u.memoize.accountID = id(u.Hostname() + normalizePath(u.Path))
	}
	return u.memoize.accountID
}

// Routing returns the first 8 bytes of the identity account ID as an integer.
func (u *URL) Routing() uint64 {
	return binary.BigEndian.Uint64(u.IdentityAccountID())
}

// Equal reports whether u and v, converted to strings and interpreted as
// UTF-8, are equal under Unicode case-folding.
func (u *URL) Equal(v *URL) bool {
	if u == v {
		return true
	}
	if u == nil || v == nil {
		return false
	}
	return strings.EqualFold(u.String(), v.String())
}

// PathEqual reports whether u.Path and v, normalized and interpreted as
// UTF-8, are equal under Unicode case-folding.
func (u *URL) PathEqual(v string) bool {
	up, v := strings.Trim(u.Path, "/"), strings.Trim(v, "/")
	return strings.EqualFold(up, v)
}

// JoinPath returns a copy of U with additional path elements.
func (u *URL) JoinPath(s ...string) *URL {
	if len(s) == 0 {
		return u
	}
	v := u.copy()
	if len(v.Path) == 0 {
		v.Path = "/"
	}
	v.Path = path.Join(append([]string{v.Path}, s...)...)
	return v
}

// MarshalJSON marshals the URL to JSON as a string.
func (u *URL) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// UnmarshalJSON unmarshals the URL from JSON as a string.
func (u *URL) UnmarshalJSON(data []byte) error {
	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		return err
	}

	v, err := Parse(s)
	if err != nil {
		return err
	}

	*u = *v
	return nil
}
