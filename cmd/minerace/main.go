package main

import "github.com/minerace/minerace-go/internal/cli"

func main() {
	cli.Execute()
}
