package main

import "github.com/shivam99392677/anwesha26-sub000/cmd"

func main() {
	cmd.Execute()
}
