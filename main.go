package main

import "github.com/wurstmineberg/playerhead/cmd"

func main() {
	cmd.Execute()
}
