package main

import "github.com/mvp-joe/jsxtract/internal/cli"

func main() {
	cli.Execute()
}
