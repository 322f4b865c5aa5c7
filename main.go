package main

import (
	cmd "github.com/cropwise/cropwise/cmd/cropwise"
	"github.com/cropwise/cropwise/internal"
)

var log = internal.GetLogger()

func main() {
	log.Info("Starting cropwise")
	cmd.Execute()
}
