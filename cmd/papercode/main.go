package main

import "github.com/paper-code/go-papercode/internal/cli"

func main() {
	cli.Execute()
}
