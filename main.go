package main

import "github.com/jsphweid/tabscore/cmd"

func main() {
	cmd.Execute()
}
