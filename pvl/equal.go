package pvl

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var equalOpts = []cmp.Option{
	cmpopts.IgnoreFields(Container{}, "Filename"),
	cmpopts.IgnoreUnexported(Document{}),
	cmpopts.EquateEmpty(),
}

// Equal returns true if <a> and <b> are the same trees of keywords, groups and objects.
//
// Source filenames and serialization settings are ignored.
func Equal(a, b any) bool {
	return cmp.Equal(a, b, equalOpts...)
}

// Diff returns human readable difference between <a> and <b> or empty string if they are equal, see Equal
func Diff(a, b any) string {
	return cmp.Diff(a, b, equalOpts...)
}
