package slice

import (
	"strings"

	"github.com/samber/lo"
)

// IsNameSame returns true if <lName> and <rName> are equal ignoring case
func IsNameSame(lName, rName string) bool {
	return strings.EqualFold(lName, rName)
}

// FindNamed returns the first <list> entry whose GetName() is the same as <name> ignoring case, it's index and true
// or empty object, -1 and false if not found.
func FindNamed[T Named](list []T, name string) (T, int, bool) {
	return lo.FindIndexOf(list, func(elm T) bool {
		return IsNameSame(elm.GetName(), name)
	})
}

// HasNamed returns true if <list> contains entry whose GetName() is the same as <name> ignoring case
func HasNamed[T Named](list []T, name string) bool {
	return lo.ContainsBy(list, func(elm T) bool {
		return IsNameSame(elm.GetName(), name)
	})
}

// AppendNewNamed returns <inp> with every element of <elms> added to the end if <inp> does not already contain an
// entry with the same name.
//
// Elements of <elms> are also checked against each other, so later duplicates are discarded.
func AppendNewNamed[T Named](inp []T, elms ...T) []T {
	for _, elm := range elms {
		if !HasNamed(inp, elm.GetName()) {
			inp = append(inp, elm)
		}
	}
	return inp
}
