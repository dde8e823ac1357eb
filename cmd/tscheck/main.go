package main

import (
	"os"

	"tscheck/cmd/tscheck/commands"
)

func main() {
	os.Exit(commands.Execute())
}
