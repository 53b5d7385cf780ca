package main

import (
	"github.com/sola-app/sola/cmd/sola/internal/cli"
)

func main() {
	cli.Execute()
}
