package main

import "github.com/OpenTraceLab/OpenTraceWave/cmd/wave/cmd"

func main() {
	cmd.Execute()
}
