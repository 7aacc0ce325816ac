package main

import (
	"fmt"
	"os"

	"github.com/routekit/routetpl/cmd/routelint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
