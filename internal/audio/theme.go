package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Note is one step of a melody. A zero Freq is a rest.
type Note struct {
	Freq  float64
	Beats float64
}

const (
	rest = 0.0
	gs4  = 415.30
	a4   = 440.00
	b4   = 493.88
	c5   = 523.25
	d5   = 587.33
	e5   = 659.25
	f5   = 698.46
	g5   = 783.99
	a5   = 880.00
)

// Korobeiniki, the traditional folk tune.
var Korobeiniki = []Note{
	{e5, 1}, {b4, .5}, {c5, .5}, {d5, 1}, {c5, .5}, {b4, .5},
	{a4, 1}, {a4, .5}, {c5, .5}, {e5, 1}, {d5, .5}, {c5, .5},
	{b4, 1.5}, {c5, .5}, {d5, 1}, {e5, 1},
	{c5, 1}, {a4, 1}, {a4, 2},

	{rest, .5}, {d5, 1}, {f5, .5}, {a5, 1}, {g5, .5}, {f5, .5},
	{e5, 1.5}, {c5, .5}, {e5, 1}, {d5, .5}, {c5, .5},
	{b4, 1}, {gs4, .5}, {c5, .5}, {d5, 1}, {e5, 1},
	{c5, 1}, {a4, 1}, {a4, 1}, {rest, 1},
}

// Theme streams a melody forever, looping back to the first note.
type Theme struct {
	sr      beep.SampleRate
	notes   []Note
	lengths []int
	attack  int

	note  int
	pos   int // sample within the current note
	phase float64
}

// NewTheme returns a looping streamer for notes at the given tempo.
func NewTheme(sr beep.SampleRate, bpm float64, notes []Note) *Theme {
	beat := float64(sr.N(time.Minute)) / bpm
	lengths := make([]int, len(notes))
	for i, n := range notes {
		lengths[i] = max(1, int(n.Beats*beat))
	}
	return &Theme{
		sr:      sr,
		notes:   notes,
		lengths: lengths,
		attack:  sr.N(5 * time.Millisecond),
	}
}

// Len is the number of samples in one pass through the melody.
func (t *Theme) Len() int {
	total := 0
	for _, n := range t.lengths {
		total += n
	}
	return total
}

func (t *Theme) Stream(samples [][2]float64) (n int, ok bool) {
	if len(t.notes) == 0 {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.lengths[t.note] {
			t.pos = 0
			t.note = (t.note + 1) % len(t.notes)
		}
		note := t.notes[t.note]
		length := t.lengths[t.note]

		var val float64
		if note.Freq != rest {
			// Square-ish lead: fundamental plus a soft third harmonic.
			val = 0.6*math.Sin(2*math.Pi*t.phase) + 0.2*math.Sin(6*math.Pi*t.phase)

			env := 1.0
			if t.pos < t.attack {
				env = float64(t.pos) / float64(t.attack)
			}
			release := length * 4 / 5
			if t.pos >= release {
				env *= float64(length-t.pos) / float64(length-release)
			}
			val *= env

			t.phase += note.Freq / float64(t.sr)
			t.phase -= math.Floor(t.phase)
		}

		samples[i][0] = val
		samples[i][1] = val
		t.pos++
	}
	return len(samples), true
}

func (t *Theme) Err() error { return nil }
