package main

import "github.com/nizsak/wikiseries/cmd"

// execute is swappable for testing.
var execute = cmd.Execute

func main() {
	execute()
}
