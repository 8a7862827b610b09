package main

import "github.com/segyhp/loan-amortizer/internal/cli"

func main() {
	cli.Execute()
}
