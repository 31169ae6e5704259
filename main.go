package main

import "github.com/chrisdamba/chefmenu/cmd"

func main() {
	cmd.Execute()
}
