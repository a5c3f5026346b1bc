package main

import "concord/internal/cli"

func main() {
	cli.Execute()
}
