package main

import "github.com/alexiusacademia/oudmold/cmd"

func main() {
	cmd.Execute()
}
