package main

import "github.com/seisflow/seisflow/internal/cli"

func main() {
	cli.Execute()
}
