package main

import "cdnctl/cmd"

func main() {
	cmd.Execute()
}
