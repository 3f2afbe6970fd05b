package main

import "github.com/open-camara/mcp-camara/cmd"

func main() {
	cmd.Execute()
}
