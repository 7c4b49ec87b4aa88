// Package commands contains the CLI commands for the application
package commands

type Flags struct {
	Verbose bool
}

type Controller struct {
	Flags *Flags
}
