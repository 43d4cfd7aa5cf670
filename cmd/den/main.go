package main

import "denling/cmd/den/root"

func main() {
	root.Execute()
}
