package main

import "smartmoney/cmd/client/cmd"

func main() {
	cmd.Execute()
}
