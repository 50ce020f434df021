package tstype

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// NameSuffix is appended to every synthesized type name.
const NameSuffix = "Data"

// Naming selects how synthesized type names are derived.
type Naming int

const (
	// NamingFlat derives a name from the field key alone. Two objects under equal
	// keys anywhere in the tree share a name, and the later one replaces the
	// earlier registry entry.
	NamingFlat Naming = iota
	// NamingPath derives a name from every field key on the way from the root,
	// so "address" under "user.profile" becomes UserProfileAddressData. A name
	// already owned by another path gets a number: UserProfileAddress2Data.
	NamingPath
)

func (n Naming) String() string {
	switch n {
	case NamingFlat:
		return "flat"
	case NamingPath:
		return "path"
	default:
		return fmt.Sprintf("Naming(%d)", int(n))
	}
}

// ParseNaming parses "flat" or "path". The empty string selects NamingFlat.
func ParseNaming(s string) (Naming, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "flat":
		return NamingFlat, nil
	case "path":
		return NamingPath, nil
	default:
		return NamingFlat, fmt.Errorf("unknown naming strategy %q (want flat or path)", s)
	}
}

// DeriveName turns a field key into a type name: the key is split on '-' and
// '_', the first character of every piece is upper-cased and the pieces are
// joined and suffixed with "Data". "phone_numbers" becomes PhoneNumbersData.
func DeriveName(fieldKey string) string {
	return namePiece(fieldKey) + NameSuffix
}

// derivePathName joins the pieces of every ancestor key and fieldKey.
// Different paths can still yield the same name; the classifier numbers those.
func derivePathName(path []string, fieldKey string) string {
	var b strings.Builder
	for _, key := range path {
		b.WriteString(namePiece(key))
	}
	b.WriteString(namePiece(fieldKey))
	b.WriteString(NameSuffix)
	return b.String()
}

// numberedName inserts n in front of the suffix: UserData, 2 gives User2Data.
func numberedName(name string, n int) string {
	return strings.TrimSuffix(name, NameSuffix) + strconv.Itoa(n) + NameSuffix
}

// namePiece is the PascalCase form of one key without the suffix. Only the
// first rune of each piece changes, with simple case mapping; bytes that are
// not valid UTF-8 are copied through.
func namePiece(key string) string {
	var b strings.Builder
	for _, piece := range strings.FieldsFunc(key, isNameSeparator) {
		r, size := utf8.DecodeRuneInString(piece)
		if r == utf8.RuneError && size <= 1 {
			b.WriteString(piece)
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(piece[size:])
	}
	return b.String()
}

func isNameSeparator(r rune) bool {
	return r == '-' || r == '_'
}
