package main

import "github.com/KaramelBytes/incidentloom-cli/cmd"

func main() {
	cmd.Execute()
}
