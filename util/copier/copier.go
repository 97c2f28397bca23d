package copier

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/jinzhu/copier"
	"github.com/stretchr/testify/assert"
)

// TDeep returns deep copy of <inp>, failing the test <t> if copier fails
func TDeep[T any](t *testing.T, inp T) T {
	out, err := Deep(inp)
	assert.NoError(t, err, "should copy the source")
	return out
}

// PDeep returns deep copy of <inp>, panicking if copier fails.
//
// Used for trees built only of exported fields, where copying can not fail.
func PDeep[T any](inp T) T {
	out, err := Deep(inp)
	if err != nil {
		panic(err)
	}
	return out
}

// Deep returns deep copy of <inp>.
//
// Unexported fields are not copied.
func Deep[T any](inp T) (out T, err error) {
	err = copier.CopyWithOption(&out, &inp, copier.Option{DeepCopy: true, IgnoreEmpty: true})
	err = errors.Wrap(err, "Deep copy")
	return
}
