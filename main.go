package main

import "dashshim/cmd"

func main() {
	cmd.Execute()
}
