package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyStyleStressAggressiveRaisesStress(t *testing.T) {
	d := Driver{Focus: 0.5}
	d.ApplyStyleStress(Aggressive, 1.0)
	assert.Greater(t, d.StressLevel, float32(0))
}

func TestApplyStyleStressRelaxLowersStress(t *testing.T) {
	d := Driver{Focus: 0.5, StressLevel: 0.5}
	d.ApplyStyleStress(Relax, 1.0)
	assert.Less(t, d.StressLevel, float32(0.5))
}

func TestApplyStyleStressClampsToUnitRange(t *testing.T) {
	d := Driver{Focus: 1.0, StressLevel: 0.001}
	for i := 0; i < 10; i++ {
		d.ApplyStyleStress(Relax, 1.0)
	}
	assert.Equal(t, float32(0), d.StressLevel)

	d = Driver{Focus: 0, StressLevel: 0.999}
	for i := 0; i < 100; i++ {
		d.ApplyStyleStress(Aggressive, 1.0)
	}
	assert.Equal(t, float32(1), d.StressLevel)
}

func TestStyleFactorOrdering(t *testing.T) {
	assert.Less(t, Relax.StyleFactor(), Normal.StyleFactor())
	assert.Less(t, Normal.StyleFactor(), Aggressive.StyleFactor())
}
