// Package main is the entry point for the assethub CLI.
package main

import "assethub.dev/pkg/assethub/cmd"

func main() {
	cmd.Execute()
}
