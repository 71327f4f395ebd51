package main

import (
	"os"

	"github.com/lushai-labs/mizodict/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
