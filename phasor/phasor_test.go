package phasor

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	turns = 200
	omega = 2 * math.Pi * 60
)

func randomFlux(r *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = (r.Float64()*2 - 1) * 1e-6
	}
	return out
}

func near(t *testing.T, want, got complex128) {
	t.Helper()
	tol := 1e-12 * math.Max(1, cmplx.Abs(want))
	assert.InDelta(t, real(want), real(got), tol)
	assert.InDelta(t, imag(want), imag(got), tol)
}

func TestComputeClosedForm(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for n := 1; n <= 64; n *= 2 {
		top, bottom := randomFlux(r, n), randomFlux(r, n)
		resp, err := Compute(top, bottom, turns, omega)
		require.NoError(t, err)
		require.Len(t, resp.EMF, n)
		require.Len(t, resp.Magnitude, n)
		require.Len(t, resp.Phase, n)
		for i := range top {
			want := complex(-turns*2*math.Pi*omega, 0) * 1i * complex(top[i]-bottom[i], 0)
			near(t, want, resp.EMF[i])
			assert.InDelta(t, cmplx.Abs(want), resp.Magnitude[i], 1e-12*math.Max(1, cmplx.Abs(want)))
		}
	}
}

func TestComputeLiteral(t *testing.T) {
	resp, err := Compute([]float64{2}, []float64{1}, turns, 120*math.Pi)
	require.NoError(t, err)
	want := -200 * 2 * math.Pi * 120 * math.Pi
	assert.InDelta(t, 0, real(resp.EMF[0]), 1e-9)
	assert.InDelta(t, want, imag(resp.EMF[0]), 1e-6)
	assert.InDelta(t, 473741.0, -want, 1)
	assert.InDelta(t, -want, resp.Magnitude[0], 1e-6)
	assert.InDelta(t, -90, resp.Phase[0], 1e-12)
}

func TestComputeSignFlip(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	top, bottom := randomFlux(r, 32), randomFlux(r, 32)
	neg := func(x []float64) []float64 {
		out := make([]float64, len(x))
		for i, v := range x {
			out[i] = -v
		}
		return out
	}
	a, err := Compute(top, bottom, turns, omega)
	require.NoError(t, err)
	b, err := Compute(neg(top), neg(bottom), turns, omega)
	require.NoError(t, err)
	for i := range top {
		assert.InDelta(t, a.Magnitude[i], b.Magnitude[i], 1e-12*math.Max(1, a.Magnitude[i]))
		shift := math.Mod(math.Abs(a.Phase[i]-b.Phase[i]), 360)
		assert.InDelta(t, 180, shift, 1e-9)
	}
}

func TestComputeCancellation(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	flux := randomFlux(r, 50)
	resp, err := Compute(flux, flux, turns, omega)
	require.NoError(t, err)
	for i := range flux {
		assert.Equal(t, complex128(0), resp.EMF[i])
		assert.Equal(t, 0.0, resp.Magnitude[i])
	}
}

func TestComputeLength(t *testing.T) {
	_, err := Compute([]float64{1, 2}, []float64{1}, turns, omega)
	assert.ErrorIs(t, err, ErrLength)
	_, err = Differential([]complex128{1}, nil)
	assert.ErrorIs(t, err, ErrLength)
}

func TestTotalFlux(t *testing.T) {
	got := TotalFlux([]float64{0, 1, -0.5})
	assert.InDeltaSlice(t, []float64{0, 2 * math.Pi, -math.Pi}, got, 1e-12)
	assert.Empty(t, TotalFlux(nil))
}

func TestEMFPureImaginary(t *testing.T) {
	for _, v := range EMF([]float64{1e-3, -2e-3, 0}, turns, omega) {
		assert.Equal(t, 0.0, real(v))
		assert.False(t, math.Signbit(real(v)))
	}
}

func TestPhaseDeg(t *testing.T) {
	got := PhaseDeg([]complex128{1, 1i, -1, -1i, 0})
	assert.InDeltaSlice(t, []float64{0, 90, 180, -90, 0}, got, 1e-12)
}

func TestPolarRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 8))
	for range 1000 {
		mag := r.Float64() * 1e3
		deg := 180 - r.Float64()*360 // (-180, 180]
		if deg == -180 {
			continue
		}
		gotMag, gotDeg := RectToPolar(PolarToRect(mag, deg))
		assert.InDelta(t, mag, gotMag, 1e-9*math.Max(1, mag))
		if mag > 1e-9 {
			assert.InDelta(t, deg, gotDeg, 1e-7)
		}
	}
}

func TestPolarToRect(t *testing.T) {
	near(t, 2i, PolarToRect(2, 90))
	near(t, -3, PolarToRect(3, 180))
	near(t, complex(math.Sqrt2/2, -math.Sqrt2/2), PolarToRect(1, -45))
}

func TestFormatPolar(t *testing.T) {
	assert.Equal(t, "2 < 90", FormatPolar(2i))
	assert.Equal(t, "1 < 0", FormatPolar(1))
}

func TestDegRad(t *testing.T) {
	assert.InDelta(t, 180.0, Deg(math.Pi), 1e-12)
	assert.InDelta(t, float32(math.Pi/2), Rad(float32(90)), 1e-6)
}
