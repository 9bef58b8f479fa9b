// Package config defines the configuration mapping that drives Makefile
// generation: the fixed set of placeholder keys, their documented defaults,
// the explicit overrides supplied by the operator, and the interface for
// loading per-project override files.
//
// A `config.Values` is the single source of truth for the renderer. It is
// ordered so that rendering and printing are deterministic. Concrete project
// file formats, such as HCL, are provided in separate packages.
package config
