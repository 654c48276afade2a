// Command doc2pdf converts Markdown files to PDF with a table of contents
// and back-to-contents anchor links after each section.
package main

import (
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "doc2pdf: %v\n", err)
		os.Exit(1)
	}
}

// run dispatches to the requested subcommand.
func run(args []string) error {
	if len(args) == 0 {
		printUsage(os.Stderr)
		return fmt.Errorf("no command given")
	}

	switch args[0] {
	case "convert":
		return runConvert(args[1:])
	case "config":
		return runConfig(args[1:])
	case "version", "--version":
		fmt.Printf("doc2pdf %s\n", Version)
		return nil
	case "help", "--help", "-h":
		printUsage(os.Stdout)
		return nil
	default:
		// Bare invocation with a markdown file converts directly.
		if isMarkdownPath(args[0]) {
			return runConvert(args)
		}
		printUsage(os.Stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// runConfig dispatches config subcommands.
func runConfig(args []string) error {
	if len(args) == 0 || args[0] != "init" {
		return fmt.Errorf("usage: doc2pdf config init [path]")
	}
	return runConfigInit(args[1:])
}

// isMarkdownPath reports whether the argument looks like a markdown file.
func isMarkdownPath(arg string) bool {
	return validateMarkdownExtension(arg) == nil
}

// printUsage writes the top-level usage text.
func printUsage(w *os.File) {
	fmt.Fprint(w, `usage: doc2pdf <command> [flags]

Commands:
  convert      convert Markdown files to PDF
  config init  write a starter config file
  version      print the version
  help         show this help

Run "doc2pdf convert" without arguments for convert flags.
`)
}
