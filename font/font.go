// Package font provides column bitmap fonts for LED matrices.
//
// A glyph is a slice of columns, left to right. Each column is a bitmask of
// Height bits where bit 0 is the top row.
package font

import (
	"fmt"
	"image"
	"sort"
	"sync"

	"golang.org/x/image/font/basicfont"
)

// Font is a lookup table from character to column bitmap.
type Font struct {
	Name   string
	Height int
	// Sep is the number of blank columns drawn after every glyph.
	Sep int
	// Low and High bound the characters covered by Data.
	Low, High rune
	Data      [][]uint16
	// Undef is drawn for characters outside [Low, High].
	Undef []uint16
}

// Glyph returns the columns for r.
func (f *Font) Glyph(r rune) []uint16 {
	if r < f.Low || r > f.High || int(r-f.Low) >= len(f.Data) {
		return f.Undef
	}
	return f.Data[r-f.Low]
}

// Advance is the horizontal space r occupies, separator included.
func (f *Font) Advance(r rune) int {
	return len(f.Glyph(r)) + f.Sep
}

// Measure returns the unscaled width of a single line of text.
func (f *Font) Measure(text string) int {
	w := 0
	for _, r := range text {
		w += f.Advance(r)
	}
	return w
}

// FromFace converts a basicfont face into a column font. Pixels with any
// coverage are set.
func FromFace(name string, face *basicfont.Face) (*Font, error) {
	if face.Height > 16 {
		return nil, fmt.Errorf("font %s: height %d exceeds 16 rows", name, face.Height)
	}
	if len(face.Ranges) == 0 {
		return nil, fmt.Errorf("font %s: no glyph ranges", name)
	}
	ascii := face.Ranges[0]
	f := &Font{
		Name:   name,
		Height: face.Height,
		Sep:    face.Advance - face.Width,
		Low:    ascii.Low,
		High:   ascii.High - 1,
	}
	for r := ascii.Low; r < ascii.High; r++ {
		f.Data = append(f.Data, faceGlyph(face, ascii.Offset+int(r-ascii.Low)))
	}
	// U+FFFD when the face has it, otherwise a box.
	f.Undef = boxGlyph(face.Width, face.Height)
	for _, rg := range face.Ranges[1:] {
		if rg.Low <= 0xfffd && 0xfffd < rg.High {
			f.Undef = faceGlyph(face, rg.Offset+int(0xfffd-rg.Low))
		}
	}
	return f, nil
}

func faceGlyph(face *basicfont.Face, index int) []uint16 {
	cols := make([]uint16, face.Width)
	y0 := index * face.Height
	for x := 0; x < face.Width; x++ {
		for y := 0; y < face.Height; y++ {
			if alphaAt(face.Mask, x, y0+y) > 0 {
				cols[x] |= 1 << uint(y)
			}
		}
	}
	return cols
}

func alphaAt(img image.Image, x, y int) uint32 {
	_, _, _, a := img.At(x, y).RGBA()
	return a
}

func boxGlyph(w, h int) []uint16 {
	cols := make([]uint16, w)
	full := uint16(1<<uint(h) - 1)
	edge := uint16(1 | 1<<uint(h-1))
	for i := range cols {
		cols[i] = edge
	}
	cols[0], cols[w-1] = full, full
	return cols
}

// Default is the name of the font used when none is given.
const Default = "5x7"

// Standard returns the built-in 5x7 font.
func Standard() *Font { return font5x7 }

var (
	mu       sync.RWMutex
	registry = map[string]*Font{}
)

func init() {
	Register(font5x7)
	if f, err := FromFace("7x13", basicfont.Face7x13); err == nil {
		Register(f)
	}
}

// Register adds or replaces a font by name.
func Register(f *Font) {
	mu.Lock()
	defer mu.Unlock()
	registry[f.Name] = f
}

// Lookup returns a registered font. An empty name selects Default.
func Lookup(name string) (*Font, error) {
	if name == "" {
		name = Default
	}
	mu.RLock()
	defer mu.RUnlock()
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown font: %s", name)
	}
	return f, nil
}

// Names lists registered fonts.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
