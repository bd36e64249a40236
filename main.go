package main

import "github.com/seashell-dev/seashell/cmd"

func main() {
	cmd.Execute()
}
