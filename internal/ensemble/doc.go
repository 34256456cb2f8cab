// Package ensemble averages spin trajectories over a distribution of
// detuning offsets, reproducing the dephasing and refocusing behavior of
// an inhomogeneously broadened sample.
package ensemble
