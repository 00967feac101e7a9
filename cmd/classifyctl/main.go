package main

import (
	"os"

	"classifyd/internal/ctl"
)

func main() {
	os.Exit(ctl.MainWithArgs(os.Args[1:]))
}
