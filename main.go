package main

import "campaign-sync/cmd"

func main() {
	cmd.Execute()
}
