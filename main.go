package main

import (
	"log"

	"github.com/ahmeterdemserceoglu/sloter/internal/app"
)

func main() {
	a := app.NewApp()
	if err := a.Run(); err != nil {
		log.Fatal(err)
	}
}
