package geo

import (
	"math/rand"
	"testing"

	"github.com/yassineraddaoui/Restaurant-Review/internal/store"
)

func TestRandomLocatorStaysInBounds(t *testing.T) {
	locator := NewRandomLocator(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		point, err := locator.Locate(store.Address{City: "Tunis"})
		if err != nil {
			t.Fatalf("locate: %v", err)
		}
		if point.Latitude < tunisiaMinLatitude || point.Latitude > tunisiaMaxLatitude {
			t.Fatalf("latitude %g out of bounds", point.Latitude)
		}
		if point.Longitude < tunisiaMinLongitude || point.Longitude > tunisiaMaxLongitude {
			t.Fatalf("longitude %g out of bounds", point.Longitude)
		}
	}
}

func TestRandomLocatorIsDeterministicPerSeed(t *testing.T) {
	a := NewRandomLocator(rand.NewSource(42))
	b := NewRandomLocator(rand.NewSource(42))

	for i := 0; i < 10; i++ {
		pa, _ := a.Locate(store.Address{})
		pb, _ := b.Locate(store.Address{})
		if pa != pb {
			t.Fatalf("seeded locators diverged at %d: %v vs %v", i, pa, pb)
		}
	}
}
