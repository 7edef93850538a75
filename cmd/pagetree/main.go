// Command pagetree compiles a pages directory into client router routes.
package main

import "github.com/abdul-hamid-achik/pagetree/cmd/pagetree/commands"

func main() {
	commands.Execute()
}
