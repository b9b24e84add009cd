package main

import (
	"github.com/zapier/ghcopy/cmd"
)

func main() {
	cmd.Execute()
}
