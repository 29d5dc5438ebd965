package main

import "list-reconciler/cmd"

func main() {
	cmd.Execute()
}
