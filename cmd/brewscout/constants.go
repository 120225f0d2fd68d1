package main

// Default limits for CLI commands.
const (
	DefaultSearchLimit = 12
	DefaultListLimit   = 50
)

// Valid import formats.
var validFormats = []string{"json", "csv", "auto"}
