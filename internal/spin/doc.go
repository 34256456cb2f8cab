// Package spin provides the core quantum primitives for spin-1/2 simulation.
//
// The package defines the fundamental types and constants used throughout
// the engine:
//
//   - [Matrix]: 2x2 complex matrix value type
//   - [SX], [SY], [SZ]: the spin-1/2 operators (S = sigma/2)
//   - [ExpPauli]: closed-form unitary exponential of a spin Hamiltonian
//   - [CheckUnitary], [CheckDensity]: physical-invariant validation
//
// All operations are value-semantic: a new matrix is derived from its
// inputs, never mutated in place.
//
// # Conventions
//
// States are density matrices evolved as rho' = U+ rho U, matching the
// propagators produced by this package. The thermal equilibrium state is
// Thermal() = I/2 + SZ, a proper unit-trace density matrix whose Sx/Sy/Sz
// signals coincide with the traceless deviation form.
package spin
