package main

import "github.com/steamforge/langgen/internal/cli"

func main() {
	cli.Execute()
}
