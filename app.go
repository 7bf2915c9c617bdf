package main

import "saxvideo/cmd"

func main() {
	cmd.Execute()
}
