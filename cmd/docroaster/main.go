package main

import "github.com/docroaster/console/cmd/docroaster/cmd"

func main() {
	cmd.Execute()
}
