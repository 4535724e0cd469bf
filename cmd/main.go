package main

import (
	"fmt"
	"os"

	"github.com/kolektivo/delaygov/cmd/delaygov"
)

func main() {
	rootCmd := delaygov.BuildDelayGovCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
