package main

import "github.com/BruksfildServices01/solar-scheduler/internal/cli"

func main() {
	cli.Execute()
}
