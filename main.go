package main

import "assignment-tracker.com/assignment-tracker/cmd"

func main() {
	cmd.Execute()
}
