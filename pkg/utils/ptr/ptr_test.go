package ptr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mase3206/nextcloud-scim-connector/pkg/utils/ptr"
)

func TestPointTo(t *testing.T) {
	t.Run("Should return pointer", func(t *testing.T) {
		type Test struct{}

		pointer := ptr.PointTo(Test{})
		assert.IsType(t, &Test{}, pointer)
	})

	t.Run("Should point at the given value", func(t *testing.T) {
		pointer := ptr.PointTo("haters")
		assert.Equal(t, "haters", *pointer)
	})
}
