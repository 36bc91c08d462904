// cmd/nexus/main.go
package main

import (
	cmd "github.com/mwhite/nexus/internal/commands"
)

// main starts the nexus CLI application by delegating to the
// cobra root command defined in the nexus package. It does not
// take any arguments and does not return a value.
func main() {
	cmd.Execute()
}
