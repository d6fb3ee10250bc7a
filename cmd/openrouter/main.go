package main

import "github.com/realmorrisliu/openrouter-go/internal/cli"

func main() {
	cli.Execute()
}
