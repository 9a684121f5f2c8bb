// Copyright (c) 2023 Colin McRae

// qsearch converts q-series to product forms and searches for relations
// among them.
package main

import (
	"os"

	"github.com/predrag3141/qseries/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
