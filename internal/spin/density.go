package spin

// Evolve applies the propagator u to the density matrix rho, returning
// U+ rho U. The input is never modified.
func Evolve(rho, u Matrix) Matrix {
	return u.Dagger().Mul(rho).Mul(u)
}

// Expect returns the real expectation value Re Tr(rho * op).
func Expect(rho, op Matrix) float64 {
	return real(rho.Mul(op).Trace())
}
