package main

import (
	"github.com/mcoot/pongarena-go/internal/cli"
)

func main() {
	cli.Execute()
}
