package main

import "vendorsync/internal/cli"

func main() {
	cli.Execute()
}
