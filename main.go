package main

import "gssoc-leaderbot/cmd"

func main() {
	cmd.Execute()
}
