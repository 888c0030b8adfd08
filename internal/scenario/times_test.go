package scenario

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "07:00:00", Clock(7, 0, 0).String())
	assert.Equal(t, "19:05:30", Clock(19, 5, 30).String())
	assert.Equal(t, "00:00:00", Clock(0, 0, 0).String())
}

func TestTimeWindowValidate(t *testing.T) {
	assert.NoError(t, TimeWindow{Begin: Clock(7, 0, 0), End: Clock(8, 0, 0)}.Validate())
	assert.NoError(t, TimeWindow{Begin: Clock(7, 0, 0), End: Clock(7, 0, 0)}.Validate())

	err := TimeWindow{Begin: Clock(8, 0, 0), End: Clock(7, 0, 0)}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after end")
}

func TestTimeWindowRandomWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	w := TimeWindow{Begin: Clock(7, 0, 0), End: Clock(8, 0, 0)}

	for i := 0; i < 1000; i++ {
		got := w.Random(rng, 0)
		assert.GreaterOrEqual(t, got, w.Begin)
		assert.LessOrEqual(t, got, w.End)
	}
}

func TestTimeWindowRandomStepAligned(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	w := TimeWindow{Begin: Clock(19, 0, 0), End: Clock(21, 0, 0)}

	seen := map[TimeOfDay]bool{}
	for i := 0; i < 1000; i++ {
		got := w.Random(rng, 10*time.Minute)
		assert.Zero(t, int(got-w.Begin)%600, "result must land on a 10 minute slot")
		assert.LessOrEqual(t, got, w.End)
		seen[got] = true
	}
	// 2 hours at 10 minute steps gives 13 possible departures.
	assert.Len(t, seen, 13)
}

func TestTimeWindowRandomEmptySpan(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	w := TimeWindow{Begin: Clock(12, 0, 0), End: Clock(12, 0, 0)}
	assert.Equal(t, w.Begin, w.Random(rng, time.Minute))
}
