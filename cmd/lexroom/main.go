package main

import (
	"github.com/lexroom/lexroom/internal/cli"
)

func main() {
	cli.Execute()
}
