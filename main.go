package main

import "alsdump/cmd"

func main() {
	cmd.Execute()
}
