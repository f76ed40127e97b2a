package main

import "github.com/neptaco/unibuild/cmd"

// set by -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cmd.Execute(version)
}
