package main

import "github.com/askrepo/askrepo/internal/cli"

func main() {
	cli.Execute()
}
