// Package main is the entry point for the keylens CLI.
package main

import "keylens.dev/pkg/keylens/cmd"

func main() {
	cmd.Execute()
}
