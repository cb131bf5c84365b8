package main

import "github.com/user/gifdeck/cmd"

func main() {
	cmd.Execute()
}
