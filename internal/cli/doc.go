// Package cli implements the clusteval command line.
//
//	clusteval cluster <k> [max_iterations] <input>
//	clusteval evaluate <k> <input>
//	clusteval run <k> <goal> <input>
//
// Inputs and --output accept local paths, s3://bucket/key and
// minio://bucket/key. A .gz, .zst or .lz4 extension selects compression.
// Every failure prints "An Error Has Occurred" on stdout, logs the cause on
// stderr and exits with status 1.
package cli
