package main

import "github.com/LegacyCodeHQ/screenwrap/cmd"

func main() {
	cmd.Execute()
}
