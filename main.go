package main

import "github.com/namph-dev/dd373watch/cmd"

func main() {
	cmd.Execute()
}
