// SPDX-License-Identifier: MIT
package modeling_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlike/modeling"
)

func TestFlatLCDM_EinsteinDeSitter(t *testing.T) {
	// Ω_m = 1 has the closed form d_C = 2c/H0·(1 − 1/√(1+z)).
	c, err := modeling.NewFlatLCDM(70, 1)
	require.NoError(t, err)
	for _, z := range []float64{0.1, 0.5, 1, 2} {
		want := 2 * modeling.SpeedOfLight / 70 * (1 - 1/math.Sqrt(1+z))
		assert.InDelta(t, want, c.ComovingDistance(z), 1e-8*want)
	}
}

func TestFlatLCDM_DistanceModulus(t *testing.T) {
	c, err := modeling.NewFlatLCDM(70, 0.3)
	require.NoError(t, err)
	mu, err := c.DistanceModulus([]float64{0.01, 0.5, 1})
	require.NoError(t, err)
	// low-z Hubble law: d_L ≈ cz/H0 (1 + (1−q0)z/2), q0 = 1.5Ωm − 1
	dl := modeling.SpeedOfLight * 0.01 / 70 * (1 + (1-(1.5*0.3-1))*0.01/2)
	assert.InDelta(t, 5*math.Log10(dl)+25, mu[0], 1e-3)
	assert.Less(t, mu[0], mu[1])
	assert.Less(t, mu[1], mu[2])

	_, err = c.DistanceModulus([]float64{0.5, 0})
	require.ErrorIs(t, err, modeling.ErrInvalidCosmology)
}

func TestFlatLCDM_Fingerprint(t *testing.T) {
	a, err := modeling.NewFlatLCDM(70, 0.3)
	require.NoError(t, err)
	b, err := modeling.NewFlatLCDM(70, 0.3)
	require.NoError(t, err)
	d, err := modeling.NewFlatLCDM(70, 0.31)
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), d.Fingerprint())

	_, err = modeling.NewFlatLCDM(-1, 0.3)
	require.ErrorIs(t, err, modeling.ErrInvalidCosmology)
	_, err = modeling.NewFlatLCDM(70, 1.2)
	require.ErrorIs(t, err, modeling.ErrInvalidCosmology)
}
