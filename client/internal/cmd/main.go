package main

import (
	"log"

	"resale/client/pkg/cmd"
)

func main() {
	resaleCmd, err := cmd.New()
	if err != nil {
		log.Fatal(err)
	}

	if err := resaleCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
