package main

import (
	"os"

	"github.com/Sereen-Kh/ai-deployment-platform/cmd/aiplatform/commands"
)

func main() {
	rootCMD := commands.NewRootCMD()
	if err := rootCMD.Execute(); err != nil {
		rootCMD.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
