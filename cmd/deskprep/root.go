package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "deskprep",
	Short: "Provision a fresh Debian/GNOME desktop",
	Long: `Deskprep turns a declarative profile into a provisioned desktop.

It compiles the profile into an ordered list of idempotent steps
(package installs, flatpak remotes and apps, snaps, vendor installers,
group and service setup, dotfile sync), checks which ones already hold,
and applies the rest in order. Every step carries an explicit failure
policy: fail-fast steps abort the run, best-effort steps log and
continue.`,
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", err.Error())
}
