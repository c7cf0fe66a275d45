package font

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

func TestDefaultFontCoversPrintableASCII(t *testing.T) {
	f, err := Lookup("")
	require.NoError(t, err)
	assert.Equal(t, Default, f.Name)
	assert.Len(t, f.Data, int(f.High-f.Low)+1)
	for r := f.Low; r <= f.High; r++ {
		g := f.Glyph(r)
		assert.Len(t, g, 5, "glyph %q", r)
		for _, col := range g {
			assert.Zero(t, col>>uint(f.Height), "glyph %q taller than font", r)
		}
	}
}

func TestGlyphLookup(t *testing.T) {
	f, err := Lookup(Default)
	require.NoError(t, err)
	assert.Equal(t, []uint16{0x7E, 0x11, 0x11, 0x11, 0x7E}, f.Glyph('A'))
	assert.Equal(t, f.Undef, f.Glyph('\t'))
	assert.Equal(t, f.Undef, f.Glyph('é'))
	assert.Equal(t, 6, f.Advance('A'))
	assert.Equal(t, 18, f.Measure("abc"))
}

func TestFromFace(t *testing.T) {
	f, err := FromFace("test", basicfont.Face7x13)
	require.NoError(t, err)
	assert.Equal(t, 13, f.Height)
	assert.Equal(t, 1, f.Sep)
	assert.Equal(t, ' ', f.Low)
	assert.Equal(t, '~', f.High)

	space := f.Glyph(' ')
	for _, col := range space {
		assert.Zero(t, col)
	}

	// 'l' and 'I' have a vertical stroke somewhere.
	for _, r := range []rune{'l', 'I', '|'} {
		lit := 0
		for _, col := range f.Glyph(r) {
			if col != 0 {
				lit++
			}
		}
		assert.NotZero(t, lit, "glyph %q is blank", r)
	}
	assert.NotEmpty(t, f.Undef)
}

func TestRegistry(t *testing.T) {
	assert.Contains(t, Names(), "5x7")
	assert.Contains(t, Names(), "7x13")
	_, err := Lookup("nope")
	assert.Error(t, err)

	Register(&Font{Name: "tiny", Height: 1, Low: 'a', High: 'a', Data: [][]uint16{{1}}, Undef: []uint16{0}})
	f, err := Lookup("tiny")
	require.NoError(t, err)
	assert.Equal(t, []uint16{1}, f.Glyph('a'))
}
