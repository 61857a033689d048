package main

import (
	"github.com/mcr-cvu/strainpipe/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
