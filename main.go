package main

import "github.com/oilsim/oilspill/cmd"

func main() {
	cmd.Execute()
}
