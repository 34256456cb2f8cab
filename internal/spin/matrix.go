package spin

import (
	"math"
	"math/cmplx"
)

// Matrix is a 2x2 complex matrix. It is a value type: all methods return
// new matrices and never modify the receiver.
type Matrix [2][2]complex128

func (m Matrix) Mul(n Matrix) Matrix {
	var r Matrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			r[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j]
		}
	}
	return r
}

func (m Matrix) Add(n Matrix) Matrix {
	var r Matrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			r[i][j] = m[i][j] + n[i][j]
		}
	}
	return r
}

func (m Matrix) Sub(n Matrix) Matrix {
	var r Matrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			r[i][j] = m[i][j] - n[i][j]
		}
	}
	return r
}

func (m Matrix) Scale(c complex128) Matrix {
	var r Matrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			r[i][j] = c * m[i][j]
		}
	}
	return r
}

// Dagger returns the conjugate transpose.
func (m Matrix) Dagger() Matrix {
	return Matrix{
		{cmplx.Conj(m[0][0]), cmplx.Conj(m[1][0])},
		{cmplx.Conj(m[0][1]), cmplx.Conj(m[1][1])},
	}
}

func (m Matrix) Trace() complex128 {
	return m[0][0] + m[1][1]
}

// MaxAbs returns the largest elementwise magnitude.
func (m Matrix) MaxAbs() float64 {
	max := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if a := cmplx.Abs(m[i][j]); a > max {
				max = a
			}
		}
	}
	return max
}

func (m Matrix) IsFinite() bool {
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			re, im := real(m[i][j]), imag(m[i][j])
			if math.IsNaN(re) || math.IsInf(re, 0) || math.IsNaN(im) || math.IsInf(im, 0) {
				return false
			}
		}
	}
	return true
}
