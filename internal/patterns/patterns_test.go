package patterns

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/arcpixel/led"
	"github.com/coreman2200/arcpixel/matrix"
	"github.com/coreman2200/arcpixel/model"
)

func newMatrix(t *testing.T, w, h int) *matrix.Matrix {
	t.Helper()
	mx, err := matrix.New(led.NewRecorder(led.Options{}), matrix.Config{Width: w, Height: h})
	require.NoError(t, err)
	return mx
}

func litCount(mx *matrix.Matrix) int {
	n := 0
	for i := 0; i < mx.Len(); i++ {
		if mx.Pixels().Get(i) != model.Off {
			n++
		}
	}
	return n
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("row_sweep")
	require.NoError(t, err)
	assert.Equal(t, RowSweep, k)

	_, err = ParseKind("plane_z")
	assert.Error(t, err)
	assert.Len(t, Kinds(), 5)
}

func TestIndexSweep(t *testing.T) {
	mx := newMatrix(t, 2, 2)
	r := NewRunner(Plan{Kind: IndexSweep})
	for i := 0; i < 4; i++ {
		require.True(t, r.Step(mx))
		assert.Equal(t, model.White, mx.Pixels().Get(i))
		assert.Equal(t, 1, litCount(mx))
	}
	assert.False(t, r.Step(mx))
}

func TestRGBChannels(t *testing.T) {
	mx := newMatrix(t, 2, 2)
	r := NewRunner(Plan{Kind: RGBTest, Cycles: 2})
	want := []model.Color{model.Red, model.Green, model.Blue, model.Red, model.Green, model.Blue}
	for _, c := range want {
		require.True(t, r.Step(mx))
		assert.Equal(t, c, mx.Get(1, 1))
		assert.Equal(t, 4, litCount(mx))
	}
	assert.False(t, r.Step(mx))
}

func TestRowSweep(t *testing.T) {
	mx := newMatrix(t, 4, 3)
	r := NewRunner(Plan{Kind: RowSweep})
	for y := 0; y < 3; y++ {
		require.True(t, r.Step(mx))
		assert.Equal(t, 4, litCount(mx))
		assert.NotEqual(t, model.Off, mx.Get(3, y))
	}
	assert.False(t, r.Step(mx))
	assert.Equal(t, RowSweep, r.Kind())
}

func TestRainbow(t *testing.T) {
	mx := newMatrix(t, 6, 2)
	r := NewRunner(Plan{Kind: Rainbow})
	require.True(t, r.Step(mx))
	assert.Equal(t, 12, litCount(mx))
	assert.Equal(t, model.Red, mx.Get(0, 0))
	assert.Equal(t, mx.Get(3, 0), mx.Get(3, 1))
	assert.Equal(t, model.Color{G: 255, B: 255}, mx.Get(3, 0))

	frames := 1
	for r.Step(mx) {
		frames++
	}
	assert.Equal(t, rainbowFrames, frames)
}

func TestDemoDrawsEveryScene(t *testing.T) {
	mx := newMatrix(t, 16, 16)
	r := NewRunner(Plan{Kind: Demo})
	n := 0
	for r.Step(mx) {
		assert.NotZero(t, litCount(mx), "scene %d", n)
		n++
	}
	assert.Equal(t, len(scenes), n)
}

func TestUnknownKindStops(t *testing.T) {
	assert.False(t, NewRunner(Plan{}).Step(newMatrix(t, 2, 2)))
}

func TestMarqueeScrollsOff(t *testing.T) {
	mx := newMatrix(t, 8, 8)
	m := &Marquee{Text: "A"}
	frames := 0
	for m.Step(mx) {
		frames++
		require.Less(t, frames, 100)
	}
	assert.Equal(t, 14, frames)
	assert.Zero(t, litCount(mx))
}

func TestLooperRunsToCompletion(t *testing.T) {
	rec := led.NewRecorder(led.Options{})
	mx, err := matrix.New(rec, matrix.Config{Width: 2, Height: 2})
	require.NoError(t, err)

	l := &Looper{FPS: 1000}
	require.NoError(t, l.Run(context.Background(), mx, NewRunner(Plan{Kind: IndexSweep})))
	assert.Equal(t, 4, l.Frames())
	assert.Len(t, rec.Frames, 4)
}

func TestLooperCancelBlanks(t *testing.T) {
	rec := led.NewRecorder(led.Options{})
	mx, err := matrix.New(rec, matrix.Config{Width: 2, Height: 2})
	require.NoError(t, err)
	mx.Fill(model.White)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, (&Looper{FPS: 1}).Run(ctx, mx, NewRunner(Plan{Kind: Demo})))
	assert.Equal(t, make([]byte, 12), rec.Last())
}
