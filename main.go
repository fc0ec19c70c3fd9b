package main

import "github.com/bgraf/trackheat/cmd"

func main() {
	cmd.Execute()
}
