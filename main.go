package main

import "flowstate.app/flowstate-api/cmd"

func main() {
	cmd.Execute()
}
