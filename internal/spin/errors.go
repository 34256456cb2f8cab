package spin

import (
	"errors"
	"fmt"
)

// Physical-invariant violations. These are fatal to the run that raised
// them: the engine never clamps or renormalizes a non-physical result.
var (
	// ErrNonUnitary indicates an evolution operator that deviates from
	// U*U+ = I beyond tolerance.
	ErrNonUnitary = errors.New("spin: operator is not unitary")

	// ErrInvalidDensity indicates a state that is not a valid density
	// matrix (non-Hermitian, trace != 1, or negative eigenvalue).
	ErrInvalidDensity = errors.New("spin: invalid density matrix")
)

// UnitarityError reports the maximum elementwise deviation of U*U+ from
// the identity.
type UnitarityError struct {
	Deviation float64
	Tol       float64
}

func (e *UnitarityError) Error() string {
	return fmt.Sprintf("spin: operator is not unitary (max deviation %.3e, tolerance %.3e)", e.Deviation, e.Tol)
}

func (e *UnitarityError) Unwrap() error { return ErrNonUnitary }

// DensityError reports which density-matrix invariant failed and by how much.
type DensityError struct {
	Invariant string
	Deviation float64
	Tol       float64
}

func (e *DensityError) Error() string {
	return fmt.Sprintf("spin: invalid density matrix: %s violated by %.3e (tolerance %.3e)", e.Invariant, e.Deviation, e.Tol)
}

func (e *DensityError) Unwrap() error { return ErrInvalidDensity }
