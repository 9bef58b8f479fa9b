// Package hcl provides the concrete HCL implementation of the project file
// Loader defined in the `config` package. It is responsible for parsing
// .genmake.hcl files and flattening their CTY values into the plain strings
// a Makefile template expects.
package hcl
