// Command eventctl mints acting-user tokens and manages postgres migrations.
package main

import "github.com/sakif/event-booking/cmd/eventctl/cmd"

func main() {
	cmd.Execute()
}
