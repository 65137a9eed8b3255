package main

import "github.com/vibast-solutions/ms-go-skillbase/cmd"

func main() {
	cmd.Execute()
}
