// Package dataset reads and writes the plain-text point format.
//
// Each non-empty line holds one point as comma-separated real numbers:
//
//	0.5,1.25,-3
//	2,0.75,1e-3
//
// All points must have the same number of coordinates. Inputs may be gzip,
// zstd or lz4 compressed, selected by the file extension. Output values are
// written with four decimals.
package dataset
