// Package model defines the domain types for the filebundler CLI.
//
// All entities in this package are transient: they are built from command
// line input at the start of an invocation and discarded when the process
// exits. Nothing is persisted except the bundle file and the response file.
//
// The CLIError type carries an ExitCode which also serves as the error
// category (configuration, i/o, unexpected). Domain packages return
// CLIError values so the CLI layer can print the matching prefix and exit
// with the matching code.
package model
