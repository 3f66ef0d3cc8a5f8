package main

import "github.com/mcoot/classquiz/internal/cli"

func main() {
	cli.Execute()
}
