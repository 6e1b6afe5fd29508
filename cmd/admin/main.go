package main

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/recipex/internal/admin"
)

func main() {
	if err := admin.NewRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
