package main

import (
	"os"

	"github.com/jaroslavdusek1/metasnap/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
