package main

import (
	"github.com/quill-labs/quill-cli/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
