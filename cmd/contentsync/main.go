package main

import "contentsync/internal/cli"

func main() {
	cli.Execute()
}
