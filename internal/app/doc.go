// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the generation pipeline (locate the
// template, load the project file, resolve values, render, write),
// decoupled from any specific entrypoint like a CLI.
package app
