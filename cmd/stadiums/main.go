package main

import "github.com/mkarpinski/stadiums/internal/cli"

func main() {
	cli.Execute()
}
