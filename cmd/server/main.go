package main

import "github.com/Kamar-Folarin/ghost-vault/internal/cli"

// Set by ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Execute(version, commit, date)
}
