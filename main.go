package main

import "opexport/cmd"

func main() {
	cmd.Execute()
}
