package main

import "github.com/streamlens/streamlens/cmd"

func main() {
	cmd.Execute()
}
