// Command validate-manifest checks game content files before they ship.
//
// Usage:
//
//	validate-manifest [-lenient] [-werror] <manifest.json|manifest.yaml>...
//
// Each file is decoded (unknown fields rejected unless -lenient) and
// validated. Problems that stop the game are errors; dangling references the
// game would skip at runtime are warnings, fatal with -werror. The exit
// status is 1 when any file fails.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"

	"homebound/pkg/game/manifest"
)

var (
	colorOK      = color.Style{color.FgGreen, color.OpBold}
	colorError   = color.Style{color.FgRed, color.OpBold}
	colorWarning = color.Style{color.FgYellow}
	colorPath    = color.Style{color.FgCyan}
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate-manifest", flag.ContinueOnError)
	fs.SetOutput(stderr)
	lenient := fs.Bool("lenient", false, "accept unknown fields")
	werror := fs.Bool("werror", false, "treat warnings as errors")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "usage: validate-manifest [-lenient] [-werror] <manifest>...")
		return 2
	}

	status := 0
	for _, path := range fs.Args() {
		if !check(path, !*lenient, *werror, stdout) {
			status = 1
		}
	}
	return status
}

// check reports on one file and returns whether it is usable.
func check(path string, strict, werror bool, w io.Writer) bool {
	fmt.Fprintln(w, colorPath.Sprint(path))

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "  %s %v\n", colorError.Sprint("error:"), err)
		return false
	}

	m, err := manifest.Parse(data, manifest.FormatForPath(path), strict)
	if err != nil {
		var verr *manifest.ValidationError
		if errors.As(err, &verr) {
			for _, p := range verr.Problems {
				fmt.Fprintf(w, "  %s %s\n", colorError.Sprint("error:"), p)
			}
		} else {
			fmt.Fprintf(w, "  %s %v\n", colorError.Sprint("error:"), err)
		}
		return false
	}

	warnings := manifest.Lint(m)
	for _, p := range warnings {
		fmt.Fprintf(w, "  %s %s\n", colorWarning.Sprint("warning:"), p)
	}

	items := 0
	for _, r := range m.Rooms {
		items += len(r.Items)
	}
	fmt.Fprintf(w, "  %s %d rooms, %d items, %d dialogues, %d cinematics, %d warnings\n",
		colorOK.Sprint("ok:"), len(m.Rooms), items, len(m.Dialogues), len(m.Cinematics), len(warnings))
	return !werror || len(warnings) == 0
}
