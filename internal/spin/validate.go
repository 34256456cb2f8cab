package spin

import (
	"math"
	"math/cmplx"
)

// Default tolerances for the invariant checks.
const (
	DefaultUnitaryTol = 1e-10
	DefaultDensityTol = 1e-8
)

// CheckUnitary verifies U*U+ = I within tol. A nil return means the
// operator is physically valid.
func CheckUnitary(u Matrix, tol float64) error {
	if !u.IsFinite() {
		return &UnitarityError{Deviation: math.Inf(1), Tol: tol}
	}
	dev := u.Mul(u.Dagger()).Sub(I2).MaxAbs()
	if dev > tol {
		return &UnitarityError{Deviation: dev, Tol: tol}
	}
	return nil
}

// CheckDensity verifies that rho is a valid density matrix: Hermitian,
// unit trace, and positive semidefinite, each within tol.
func CheckDensity(rho Matrix, tol float64) error {
	if !rho.IsFinite() {
		return &DensityError{Invariant: "finiteness", Deviation: math.Inf(1), Tol: tol}
	}
	if dev := rho.Sub(rho.Dagger()).MaxAbs(); dev > tol {
		return &DensityError{Invariant: "hermiticity", Deviation: dev, Tol: tol}
	}
	if dev := cmplx.Abs(rho.Trace() - 1); dev > tol {
		return &DensityError{Invariant: "unit trace", Deviation: dev, Tol: tol}
	}
	// Closed-form eigenvalues of a 2x2 Hermitian matrix.
	mean := real(rho.Trace()) / 2
	det := real(rho[0][0]*rho[1][1] - rho[0][1]*rho[1][0])
	disc := mean*mean - det
	if disc < 0 {
		disc = 0
	}
	if min := mean - math.Sqrt(disc); min < -tol {
		return &DensityError{Invariant: "positive semidefiniteness", Deviation: -min, Tol: tol}
	}
	return nil
}
