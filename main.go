package main

import "github.com/notargets/foampost/cmd"

func main() {
	cmd.Execute()
}
