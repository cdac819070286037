package main

import "AnnSync/cmd"

func main() {
	cmd.Execute()
}
