package main

import "github.com/sadopc/ganttr/cmd"

func main() {
	cmd.Execute()
}
