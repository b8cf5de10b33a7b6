package geo

import (
	"math"
	"testing"
)

func TestHaversineDistanceZeroAtSamePoint(t *testing.T) {
	d := HaversineDistance(10.7769, 106.7009, 10.7769, 106.7009)
	if d != 0 {
		t.Errorf("distance between identical coordinates = %f, want 0", d)
	}
}

func TestHaversineDistanceSymmetric(t *testing.T) {
	a := HaversineDistance(10.7769, 106.7009, 21.0285, 105.8542)
	b := HaversineDistance(21.0285, 105.8542, 10.7769, 106.7009)
	if math.Abs(a-b) > 1e-6 {
		t.Errorf("distance not symmetric: %f vs %f", a, b)
	}
}

func TestHaversineDistanceKnownValue(t *testing.T) {
	// Ho Chi Minh City to Hanoi, roughly 1140 km.
	d := HaversineDistance(10.7769, 106.7009, 21.0285, 105.8542)
	if d < 1100000 || d > 1200000 {
		t.Errorf("HCMC-Hanoi distance = %f m, expected around 1.14e6 m", d)
	}
}

func TestHaversineDistanceShortRange(t *testing.T) {
	// Two points ~111 m apart (0.001 degrees of latitude).
	d := HaversineDistance(10.7769, 106.7009, 10.7779, 106.7009)
	if d < 100 || d > 130 {
		t.Errorf("short range distance = %f m, expected around 111 m", d)
	}
}
