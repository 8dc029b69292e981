// Package spectral implements the pseudo-spectral machinery for a
// doubly-periodic square domain: the collocation and wavenumber grids,
// the 2/3-rule dealiasing mask, forward/inverse discrete Fourier
// transforms and the vorticity-transport operators (stream-function
// inversion, velocity reconstruction, nonlinear advection, linear
// diffusion/injection).
package spectral
