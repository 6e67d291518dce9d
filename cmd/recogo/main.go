// cmd/recogo/main.go
package main

import (
	"os"

	"github.com/recogo/recogo/cmd/recogo/commands"
)

func main() {
	os.Exit(commands.Execute())
}
