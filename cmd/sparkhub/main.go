package main

import "github.com/sparkhub/sparkhub-cli/cmd/sparkhub/cmd"

func main() {
	cmd.Execute()
}
