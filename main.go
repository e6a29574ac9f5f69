package main

import (
	"os"

	"github.com/udrembiga/manajemen-ud/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
