package main

import "screentime/internal/commands"

func main() {
	commands.Execute()
}
