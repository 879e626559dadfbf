package main

import "github.com/binfold/histo/cmd"

func main() {
	cmd.Execute()
}
