// Package phasor 将次级线圈的磁通测量换算为感应电动势相量。
//
// 单频正弦稳态下磁通本身就是相量，对时间求导等价于乘以 jω：
//
//	Φ     = 2π · φ                    (φ 为每弧度磁通)
//	E     = -N · Φ · ω · j
//	E_out = E_top - E_bottom          (差动连接)
package phasor

import (
	"errors"
	"math"
	"math/cmplx"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// ErrLength 上下线圈序列长度不一致。
var ErrLength = errors.New("phasor: 序列长度不一致")

// Response 差动输出电动势及其幅值、相位。
type Response struct {
	EMF       []complex128 // 差动电动势(V)
	Magnitude []float64    // 幅值(V)
	Phase     []float64    // 相位(度)
}

// TotalFlux 每弧度磁通换算为整周磁通。
func TotalFlux(perRadian []float64) []float64 {
	out := make([]float64, len(perRadian))
	vecmath.ScaleBlock(out, perRadian, 2*math.Pi)
	return out
}

// EMF 线圈感应电动势 -N·Φ·ω·j。
func EMF(totalFlux []float64, turns int, omega float64) []complex128 {
	k := -float64(turns) * omega
	out := make([]complex128, len(totalFlux))
	for i, phi := range totalFlux {
		// 纯虚数，实部保持 +0 以免零值相位落到 180°
		out[i] = complex(0, k*phi)
	}
	return out
}

// Differential 差动输出 top - bottom。
func Differential(top, bottom []complex128) ([]complex128, error) {
	if len(top) != len(bottom) {
		return nil, ErrLength
	}
	out := make([]complex128, len(top))
	for i := range top {
		out[i] = top[i] - bottom[i]
	}
	return out, nil
}

// Magnitude 相量幅值。
func Magnitude(z []complex128) []float64 {
	re, im := Split(z)
	out := make([]float64, len(z))
	vecmath.Magnitude(out, re, im)
	return out
}

// PhaseDeg 相量相位（主值，单位度）。
func PhaseDeg(z []complex128) []float64 {
	out := make([]float64, len(z))
	for i, v := range z {
		out[i] = Deg(cmplx.Phase(v))
	}
	return out
}

// Split 拆分实部与虚部。
func Split(z []complex128) (re, im []float64) {
	re, im = make([]float64, len(z)), make([]float64, len(z))
	for i, v := range z {
		re[i], im[i] = real(v), imag(v)
	}
	return re, im
}

// Compute 由上下次级线圈的每弧度磁通计算差动输出。
func Compute(top, bottom []float64, turns int, omega float64) (*Response, error) {
	if len(top) != len(bottom) {
		return nil, ErrLength
	}
	emf, err := Differential(
		EMF(TotalFlux(top), turns, omega),
		EMF(TotalFlux(bottom), turns, omega),
	)
	if err != nil {
		return nil, err
	}
	return &Response{
		EMF:       emf,
		Magnitude: Magnitude(emf),
		Phase:     PhaseDeg(emf),
	}, nil
}
