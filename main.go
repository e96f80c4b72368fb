package main

import (
	"os"

	"github.com/mut-reserve/mutreserve/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
