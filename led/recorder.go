package led

import (
	"github.com/rs/zerolog/log"
)

// Recorder keeps every fixed frame it receives, without bound. Meant for
// tests; long runs should use Null.
type Recorder struct {
	Base
	Frames        [][]byte
	PositionCount int
	Brightness    []uint8
	Closed        int

	// Supports controls what SetMasterBrightness reports.
	Supports bool
}

func NewRecorder(opts Options) *Recorder {
	return &Recorder{Base: NewBase(opts)}
}

func (d *Recorder) Setup(src Source) error {
	if err := d.Base.Setup(src); err != nil {
		return err
	}
	d.PositionCount = len(src.Positions())
	return nil
}

func (d *Recorder) Update(rgb []byte) error {
	buf := d.Fix(rgb)
	d.Frames = append(d.Frames, append([]byte(nil), buf...))

	// compute simple average for log
	var sum [3]int
	for i := 0; i+2 < len(buf); i += 3 {
		sum[0] += int(buf[i])
		sum[1] += int(buf[i+1])
		sum[2] += int(buf[i+2])
	}
	n := len(buf) / 3
	if n == 0 {
		n = 1
	}
	log.Debug().
		Int("frame", len(d.Frames)).
		Ints("avg", []int{sum[0] / n, sum[1] / n, sum[2] / n}).
		Msg("recorded frame")
	return nil
}

// Last returns the most recent frame, nil before the first Update.
func (d *Recorder) Last() []byte {
	if len(d.Frames) == 0 {
		return nil
	}
	return d.Frames[len(d.Frames)-1]
}

func (d *Recorder) SetMasterBrightness(level uint8) (bool, error) {
	if !d.Supports {
		return false, nil
	}
	d.Brightness = append(d.Brightness, level)
	return true, nil
}

func (d *Recorder) Close() error {
	d.Closed++
	return nil
}
