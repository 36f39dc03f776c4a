package booking

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var base = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func span(startMin, endMin int) Interval {
	return Interval{
		Start: base.Add(time.Duration(startMin) * time.Minute),
		End:   base.Add(time.Duration(endMin) * time.Minute),
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"identical", span(540, 600), span(540, 600), true},
		{"partial", span(540, 600), span(570, 630), true},
		{"contained", span(540, 660), span(570, 600), true},
		{"back to back", span(540, 600), span(600, 660), false},
		{"disjoint", span(540, 600), span(700, 760), false},
		{"zero length inside", span(540, 600), span(570, 570), false},
		{"zero length at start", span(540, 600), span(540, 540), false},
		{"inverted", span(600, 540), span(540, 600), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.want, Overlaps(tt.b, tt.a), "overlap must be symmetric")
		})
	}
}

func TestOverlapsProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	random := func() Interval {
		s := rng.Intn(1000)
		return span(s, s+rng.Intn(120))
	}

	for i := 0; i < 2000; i++ {
		a, b := random(), random()
		assert.Equal(t, Overlaps(a, b), Overlaps(b, a))
		if a.Valid() {
			assert.True(t, Overlaps(a, a), "positive-length interval overlaps itself")
		}
		touching := Interval{Start: a.End, End: a.End.Add(time.Hour)}
		assert.False(t, Overlaps(a, touching), "intervals sharing a boundary do not overlap")
	}
}
