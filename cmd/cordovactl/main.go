package main

import "github.com/kluctl/cordovactl/cmd/cordovactl/commands"

func main() {
	commands.Main()
}
