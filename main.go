package main

import "github.com/deploymenttheory/go-partcheck/cmd"

func main() {
	cmd.Execute()
}
