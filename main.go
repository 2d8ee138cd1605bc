package main

import "github.com/taskhelp/taskhelp/cmd"

func main() {
	cmd.Execute()
}
