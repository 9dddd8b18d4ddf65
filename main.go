package main

import "donext/cmd"

func main() {
	cmd.Execute()
}
