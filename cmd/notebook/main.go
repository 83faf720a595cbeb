package main

import (
	"os"

	"github.com/treykane/cli-notebook/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
