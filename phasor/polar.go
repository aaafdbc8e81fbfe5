package phasor

import (
	"fmt"
	"math"
	"math/cmplx"

	"golang.org/x/exp/constraints"
)

// Deg 弧度转角度。
func Deg[T constraints.Float](rad T) T { return rad * 180 / math.Pi }

// Rad 角度转弧度。
func Rad[T constraints.Float](deg T) T { return deg * math.Pi / 180 }

// PolarToRect 极坐标（角度制）转直角坐标。
func PolarToRect(mag, deg float64) complex128 {
	rad := Rad(deg)
	return complex(mag*math.Cos(rad), mag*math.Sin(rad))
}

// RectToPolar 直角坐标转极坐标（角度制，主值）。
func RectToPolar(z complex128) (mag, deg float64) {
	return cmplx.Abs(z), Deg(cmplx.Phase(z))
}

// FormatPolar 以 "幅值 < 角度" 形式输出。
func FormatPolar(z complex128) string {
	mag, deg := RectToPolar(z)
	return fmt.Sprintf("%.6g < %.6g", mag, deg)
}
