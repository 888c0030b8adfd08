package scenario

import (
	"fmt"
	"math/rand"
	"time"
)

// TimeOfDay is a clock time as seconds since midnight.
type TimeOfDay int

// Clock builds a TimeOfDay from hours, minutes, and seconds.
func Clock(h, m, s int) TimeOfDay {
	return TimeOfDay(h*3600 + m*60 + s)
}

// String renders the time as "HH:MM:SS", the format MATSim expects.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(t)/3600, int(t)/60%60, int(t)%60)
}

// TimeWindow is an inclusive range of departure times.
type TimeWindow struct {
	Begin TimeOfDay
	End   TimeOfDay
}

// Validate reports an error if the window is inverted.
func (w TimeWindow) Validate() error {
	if w.Begin > w.End {
		return fmt.Errorf("time window begin %s is after end %s", w.Begin, w.End)
	}
	return nil
}

// Random picks a time within [Begin, End]. With a positive step the
// result is Begin + k*step for a uniformly random integer k; without one
// the draw is uniform at second resolution.
func (w TimeWindow) Random(rng *rand.Rand, step time.Duration) TimeOfDay {
	span := int(w.End - w.Begin)
	if span <= 0 {
		return w.Begin
	}
	if step > 0 {
		stepSec := int(step / time.Second)
		if stepSec <= 0 {
			stepSec = 1
		}
		k := rng.Intn(span/stepSec + 1)
		return w.Begin + TimeOfDay(k*stepSec)
	}
	return w.Begin + TimeOfDay(rng.Intn(span+1))
}

// Departure windows for the grid scenarios: a broad morning peak with a
// coarse step, matching the study's first scenario family.
var (
	GridHomeWindow = TimeWindow{Begin: Clock(7, 0, 0), End: Clock(8, 0, 0)}
	GridWorkWindow = TimeWindow{Begin: Clock(17, 0, 0), End: Clock(18, 0, 0)}
	GridShopWindow = TimeWindow{Begin: Clock(19, 0, 0), End: Clock(21, 0, 0)}
)

// GridTimeStep snaps grid-scenario departures to 10 minute slots.
const GridTimeStep = 10 * time.Minute

// Departure windows for network-derived scenarios: tight peaks that
// stress the network within a few minutes.
var (
	NetworkHomeWindow = TimeWindow{Begin: Clock(7, 50, 0), End: Clock(8, 0, 0)}
	NetworkWorkWindow = TimeWindow{Begin: Clock(17, 50, 0), End: Clock(18, 0, 0)}
	NetworkShopWindow = TimeWindow{Begin: Clock(19, 50, 0), End: Clock(20, 0, 0)}
)

// NetworkTimeStep snaps network-scenario departures to 30 second slots.
const NetworkTimeStep = 30 * time.Second
