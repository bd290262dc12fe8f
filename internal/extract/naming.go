package extract

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidUnitName indicates a destination whose name cannot become a component name.
var ErrInvalidUnitName = errors.New("invalid unit name")

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// DeriveName turns a destination path into a component name: the basename
// without its extension, split on "-", each segment capitalized and joined.
// Examples: "user-profile-card.tsx" -> "UserProfileCard", "x" -> "X".
func DeriveName(destination string) string {
	base := path.Base(strings.ReplaceAll(destination, `\`, "/"))
	base = strings.TrimSuffix(base, path.Ext(base))

	var b strings.Builder
	for _, segment := range strings.Split(base, "-") {
		b.WriteString(capitalizeFirstLetter(segment))
	}
	return b.String()
}

// ValidateName checks that name can be used as a component identifier.
func ValidateName(name string) error {
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidUnitName, name)
	}
	return nil
}

func capitalizeFirstLetter(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
