package main

import "github.com/RyanBlaney/sonido-charts/cmd"

func main() {
	cmd.Execute()
}
