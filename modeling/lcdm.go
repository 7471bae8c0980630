// SPDX-License-Identifier: MIT
package modeling

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// SpeedOfLight in km/s.
const SpeedOfLight = 299792.458

// distanceQuadPoints is the Gauss–Legendre order used for comoving distances.
const distanceQuadPoints = 64

// ErrInvalidCosmology is returned for non-physical FlatLCDM parameters or
// redshifts.
var ErrInvalidCosmology = errors.New("modeling: invalid cosmology")

// FlatLCDM is a minimal flat ΛCDM background, sufficient for distance-based
// statistics and for exercising the pipeline without an external library.
type FlatLCDM struct {
	H0     float64 // km/s/Mpc
	OmegaM float64
}

var (
	_ Cosmology                 = FlatLCDM{}
	_ DistanceModulusCalculator = FlatLCDM{}
)

// NewFlatLCDM validates 0 < H0 and 0 ≤ OmegaM ≤ 1.
func NewFlatLCDM(h0, omegaM float64) (FlatLCDM, error) {
	if !(h0 > 0) || math.IsInf(h0, 0) || !(omegaM >= 0 && omegaM <= 1) {
		return FlatLCDM{}, fmt.Errorf("H0=%g Omega_m=%g: %w", h0, omegaM, ErrInvalidCosmology)
	}

	return FlatLCDM{H0: h0, OmegaM: omegaM}, nil
}

// Fingerprint hashes the parameter bits (FNV-1a).
func (c FlatLCDM) Fingerprint() uint64 {
	h := fnv.New64a()
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(c.H0))
	binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(c.OmegaM))
	_, _ = h.Write(buf[:])

	return h.Sum64()
}

// E returns H(z)/H0.
func (c FlatLCDM) E(z float64) float64 {
	zp := 1 + z

	return math.Sqrt(c.OmegaM*zp*zp*zp + 1 - c.OmegaM)
}

// ComovingDistance returns the line-of-sight comoving distance to z in Mpc.
func (c FlatLCDM) ComovingDistance(z float64) float64 {
	if z == 0 {
		return 0
	}
	integral := quad.Fixed(func(x float64) float64 { return 1 / c.E(x) }, 0, z, distanceQuadPoints, nil, 0)

	return SpeedOfLight / c.H0 * integral
}

// DistanceModulus returns μ(z) = 5·log10(d_L / Mpc) + 25 for each z > 0.
func (c FlatLCDM) DistanceModulus(z []float64) ([]float64, error) {
	out := make([]float64, len(z))
	for i, zi := range z {
		if !(zi > 0) || math.IsInf(zi, 0) {
			return nil, fmt.Errorf("z[%d]=%g: %w", i, zi, ErrInvalidCosmology)
		}
		dl := (1 + zi) * c.ComovingDistance(zi)
		out[i] = 5*math.Log10(dl) + 25
	}

	return out, nil
}
