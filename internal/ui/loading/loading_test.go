package loading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndicatorNestedSections(t *testing.T) {
	ind := NewIndicator()
	assert.False(t, ind.Visible())

	ind.Acquire()
	ind.Acquire()
	assert.True(t, ind.Visible())

	ind.Release()
	assert.True(t, ind.Visible(), "still one section outstanding")

	ind.Release()
	assert.False(t, ind.Visible())
}

func TestIndicatorNeverGoesNegative(t *testing.T) {
	ind := NewIndicator()

	ind.Release()
	ind.Release()
	assert.False(t, ind.Visible())

	ind.Acquire()
	assert.True(t, ind.Visible(), "extra releases must not bank a negative count")
}
