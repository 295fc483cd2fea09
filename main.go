package main

import "github.com/masnyjimmy/asyncdocket/cmd"

func main() {
	cmd.Execute()
}
