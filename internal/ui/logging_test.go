package ui

import (
	"errors"
	"os"

	"github.com/pterm/pterm"
)

func ExamplePrintfln() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "Loop %s: output %.2f"
	Printfln(msg, "oven", 12.5)
	// Output:
	// Loop oven: output 12.50
}

func ExampleDebug() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()
	SetDebugEnabled(true)
	defer SetDebugEnabled(false)

	msg := "dt: %v"
	Debug(msg, 0.2)
	// Output:
	// DEBUG: dt: 0.2
}

func ExampleInfo() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "Starting loop %s"
	Info(msg, "oven")
	// Output:
	// INFO: Starting loop oven
}

func ExampleWarning() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "Loop %s: all gains are zero"
	Warning(msg, "oven")
	// Output:
	// WARNING: Loop oven: all gains are zero
}

func ExampleError() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "Update failed: %v"
	Error(msg, errors.New("pid: invalid argument"))
	// Output:
	// ERROR: Update failed: pid: invalid argument
}
