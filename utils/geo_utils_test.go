package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters_SamePoint(t *testing.T) {
	assert.Equal(t, 0.0, DistanceMeters(11.0168, 76.9558, 11.0168, 76.9558))
}

func TestDistanceMeters_Symmetry(t *testing.T) {
	d1 := DistanceMeters(11.0168, 76.9558, 13.0827, 80.2707)
	d2 := DistanceMeters(13.0827, 80.2707, 11.0168, 76.9558)
	assert.InDelta(t, d1, d2, 1e-9)
}

func TestDistanceMeters_OneMilliDegreeLatitude(t *testing.T) {
	// 纬度方向 0.001° 约为 111.2 米
	d := DistanceMeters(11.0168, 76.9558, 11.0178, 76.9558)
	assert.InDelta(t, 111.2, d, 0.5)
}

func TestDistanceMeters_KnownCityPair(t *testing.T) {
	// Coimbatore 到 Chennai 约 432 公里
	d := DistanceMeters(11.0168, 76.9558, 13.0827, 80.2707)
	assert.InDelta(t, 432000, d, 5000)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 123.46, Round2(123.456))
	assert.Equal(t, 123.45, Round2(123.454))
	assert.Equal(t, 0.0, Round2(0))
}
