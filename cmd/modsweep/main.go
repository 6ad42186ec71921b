// Command modsweep finds unused exports and unused declared dependencies
// across an ES-module JS/TS project. It is the CLI front-end wiring
// loader → analyzer pool → linker → report, plus an `lsp` subcommand for
// editor integration.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error

	switch os.Args[1] {
	case "lsp":
		err = runLSP()
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		err = runAnalyze(os.Args[1:])
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "modsweep:", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("modsweep - find unused exports and unused dependencies")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  modsweep <target-dir> [--format compact|clean|json] [--analyze types|values|all] [-v]")
	fmt.Println("  modsweep lsp")
}
