package main

import "weightloss/cmd/client/cmd"

func main() {
	cmd.Execute()
}
