package main

import (
	"fmt"
	"os"

	"github.com/gabrielius837/rps-contract/cmd/rps/launcher"
)

func main() {
	if err := launcher.Launch(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
