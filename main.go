package main

import (
	"github.com/homeshift/homeshift/cmd"
	"github.com/homeshift/homeshift/cmd/util"
)

func main() {
	defer util.HandlePanic()
	cmd.Execute()
}
