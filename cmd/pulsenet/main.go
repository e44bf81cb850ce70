// Command pulsenet is the command-line entry point for the admission and
// traffic-engineering pipeline: it wires the four selection axes (phase,
// scenario, phase-1 strategy, phase-2 strategy) plus topology/workload file
// flags into one run, and prints the resulting admission summary, per-link
// utilisation stream, and per-job JSON records.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(runApp(os.Args))
}

// runApp builds the application, runs it, and maps the outcome to an exit
// code: zero on success, non-zero if a required input file was missing or
// any other error surfaced. Errors are logged before the process exits so a
// caller redirecting stdout for the result streams still sees the failure.
func runApp(args []string) int {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	app := newApp(log)
	if err := app.Run(args); err != nil {
		log.WithError(err).Error("pulsenet run failed")
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
