package main

import "github.com/tessro/spotbar/internal/cli"

func main() {
	cli.Execute()
}
