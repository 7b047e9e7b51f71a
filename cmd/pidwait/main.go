package main

import "github.com/Paintersrp/pidwait/internal/cli"

func main() {
	cli.Execute()
}
