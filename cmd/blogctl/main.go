package main

import "github.com/dmitrijs2005/blogcore/internal/cli"

func main() {
	cli.Execute()
}
