package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeLayoutShortReceipt(t *testing.T) {
	l := ComputeLayout(604, 1208)

	assert.InDelta(t, 70.0, l.ImageWidthMM, 0.001)
	assert.InDelta(t, 140.0, l.ImageHeightMM, 0.001)
	assert.InDelta(t, 200.0, l.PageHeightMM, 0.001)
}

func TestComputeLayoutTallReceipt(t *testing.T) {
	l := ComputeLayout(604, 2416)

	assert.InDelta(t, 280.0, l.ImageHeightMM, 0.001)
	assert.InDelta(t, 290.0, l.PageHeightMM, 0.001)
}

func TestComputeLayoutDegenerateImage(t *testing.T) {
	l := ComputeLayout(0, 100)
	assert.Equal(t, MinPageHeightMM, l.PageHeightMM)
}

func TestLayoutHTML(t *testing.T) {
	doc := ComputeLayout(604, 1208).HTML([]byte{0x89, 'P', 'N', 'G'})

	assert.True(t, strings.Contains(doc, "size: 80.00mm 200.00mm"))
	assert.True(t, strings.Contains(doc, "width: 70.00mm"))
	assert.True(t, strings.Contains(doc, "margin: 5.00mm"))
	assert.True(t, strings.Contains(doc, "data:image/png;base64,iVBORw=="))
}

func TestInches(t *testing.T) {
	assert.InDelta(t, 3.1496, *inches(80), 0.0001)
}
