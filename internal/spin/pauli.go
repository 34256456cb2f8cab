package spin

import "math"

// Spin-1/2 operators, S = sigma/2. Process-wide immutable constants.
var (
	SX = Matrix{{0, 0.5}, {0.5, 0}}
	SY = Matrix{{0, 0.5i}, {-0.5i, 0}}
	SZ = Matrix{{0.5, 0}, {0, -0.5}}
	I2 = Matrix{{1, 0}, {0, 1}}
)

// Thermal returns the thermal-equilibrium density matrix I/2 + SZ.
// Unit trace, positive semidefinite; its transverse signals are identical
// to the traceless deviation form since the identity part is invariant
// under any unitary conjugation.
func Thermal() Matrix {
	return Matrix{{1, 0}, {0, 0}}
}

// ExpPauli computes exp(-i*(ax*SX + ay*SY + az*SZ)*t) in closed form.
//
// With v = (ax, ay, az) and Omega = |v|, the Hamiltonian is
// (Omega/2)*(v^ . sigma), so U = cos(Omega*t/2)*I - i*sin(Omega*t/2)*(v^ . sigma).
// The result is exactly unitary up to floating-point rounding, with no
// series truncation.
func ExpPauli(ax, ay, az, t float64) Matrix {
	omega := math.Sqrt(ax*ax + ay*ay + az*az)
	if omega == 0 || t == 0 {
		return I2
	}
	half := omega * t / 2
	c := complex(math.Cos(half), 0)
	s := complex(0, -math.Sin(half))
	nx, ny, nz := ax/omega, ay/omega, az/omega
	// With SY = [[0, i/2], [-i/2, 0]], the unit-direction matrix is
	// [[nz, nx+i*ny], [nx-i*ny, -nz]].
	return Matrix{
		{c + s*complex(nz, 0), s * complex(nx, ny)},
		{s * complex(nx, -ny), c - s*complex(nz, 0)},
	}
}
