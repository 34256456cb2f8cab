// Package shapes generates discretized pulse envelopes for shaped pulses.
//
// Each generator produces an [Envelope]: amplitude, phase, and
// instantaneous-frequency-offset arrays sampled over the pulse duration.
// Supported shapes:
//
//   - gaussian: smooth selective excitation
//   - square: constant envelope, optional linear rise/fall
//   - sech: hyperbolic-secant adiabatic inversion
//   - wurst: broadband sweep with smooth truncation
//   - chirp: linear frequency sweep under a selectable envelope
//   - noisy: a base shape perturbed by seeded pseudorandom fluctuations
//
// Generation is a pure function of its inputs; the noisy generator's PRNG
// state is local to the call, so identical seeds give identical envelopes.
package shapes
