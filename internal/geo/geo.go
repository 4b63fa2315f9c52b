package geo

import "github.com/yassineraddaoui/Restaurant-Review/internal/store"

type Point struct {
	Latitude  float64
	Longitude float64
}

// Locator resolves a street address to coordinates. The bundled
// implementation is a placeholder randomizer; a real geocoder plugs in
// behind the same contract.
type Locator interface {
	Locate(address store.Address) (Point, error)
}
