package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const releaseVersion = "1.0.0"

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found or error loading it:", err)
	}

	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}
