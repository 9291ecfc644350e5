package main

import "github.com/iksnae/chatguard/cmd"

func main() {
	cmd.Execute()
}
