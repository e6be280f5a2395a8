package main

import "github.com/RamakrishnanGH/sqlopsstudio/app/cmd"

func main() {
	cmd.Execute()
}
