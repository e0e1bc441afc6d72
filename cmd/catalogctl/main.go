package main

import "github.com/light-bringer/catalog-service/cmd/catalogctl/commands"

func main() {
	commands.Execute()
}
