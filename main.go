package main

import "github.com/audiokit/audiofile/cmd"

func main() {
	cmd.Execute()
}
