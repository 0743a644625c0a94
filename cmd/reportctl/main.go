package main

import "github.com/lavimachotel/Lavimac-Hotel-sub003/internal/cli"

func main() {
	cli.Execute()
}
