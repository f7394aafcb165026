package main

import (
	"log"

	"github.com/pascal910107/objectid/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
