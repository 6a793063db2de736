// Package main is the entry point for the roster CLI.
package main

import "legal-roster/cli"

func main() {
	cli.Execute()
}
