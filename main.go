package main

import (
	"fmt"
	"os"

	"github.com/mostlyhumanagency/claude-plugins-sub004/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main runs the configaudit command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
