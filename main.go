package main

import "ebook-indexer/cmd"

func main() {
	cmd.Execute()
}
