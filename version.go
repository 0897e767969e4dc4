package main

import (
	"fmt"
)

//Version is minor version of zombiemaker
const Version = "v0.2"

//VersionCommand is interface to receive version read request
type VersionCommand struct {
}

var versionCommand VersionCommand

// Execute executes the get-version command
func (v VersionCommand) Execute(args []string) error {
	fmt.Println(Version)
	return nil
}

func init() {
	parser.AddCommand("version",
		"show the version of zombiemaker",
		"display the zombiemaker version",
		&versionCommand)
}
