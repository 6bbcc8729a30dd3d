package main

import "github.com/stalker-doge/gitfolio/cmd/gitfolio/cmd"

func main() {
	cmd.Execute()
}
