package main

import "github.com/P4UL-M/copper/cmd/copper/cmd"

func main() {
	cmd.Execute()
}
