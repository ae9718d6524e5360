package main

import (
	"os"

	"github.com/schmitthub/regsmoke/internal/regsmoke"
)

func main() {
	os.Exit(regsmoke.Main())
}
