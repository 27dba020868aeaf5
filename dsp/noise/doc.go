// Package noise provides colored-noise synthesis primitives.
//
// The noise color is parameterized by a spectral exponent alpha in [0, 3]:
// the power spectral density follows 1/f^alpha, so 0 is white, 1 is pink
// and 2 is brown. Two helpers map the exponent to a descriptive label and
// to the compressed "effective" exponent used for offline spectral shaping.
//
// Synthesizer is the streaming generator: it blends white, pink (Kellet
// six-pole recursive filter) and brown (leaky integrator) sources per
// sample, with the exponent updatable from a control thread while an audio
// callback fills blocks.
package noise
