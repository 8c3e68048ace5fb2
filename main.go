package main

import "github.com/oeai/oeaimport/cmd"

func main() {
	cmd.Execute()
}
