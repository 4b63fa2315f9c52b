package geo

import (
	"math/rand"
	"sync"
	"time"

	"github.com/yassineraddaoui/Restaurant-Review/internal/store"
)

const (
	tunisiaMinLatitude  = 30.24
	tunisiaMaxLatitude  = 37.54
	tunisiaMinLongitude = 7.52
	tunisiaMaxLongitude = 11.60
)

// RandomLocator returns a random point inside Tunisia regardless of the
// address. It stands in for a real geocoder during development; the source is
// injected so nothing depends on package-global randomness.
type RandomLocator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomLocator(src rand.Source) *RandomLocator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &RandomLocator{rng: rand.New(src)}
}

func (l *RandomLocator) Locate(_ store.Address) (Point, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return Point{
		Latitude:  tunisiaMinLatitude + l.rng.Float64()*(tunisiaMaxLatitude-tunisiaMinLatitude),
		Longitude: tunisiaMinLongitude + l.rng.Float64()*(tunisiaMaxLongitude-tunisiaMinLongitude),
	}, nil
}
