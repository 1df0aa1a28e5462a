package main

import (
	"fmt"
	"os"

	"github.com/mandalnilabja/artgen/internal/version"
)

func main() {
	if err := newRootCmd(version.Version, version.BuildTime, version.GitCommit).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
