package main

import "github.com/vkrejcir/facetrace/cmd"

func main() {
	cmd.Execute()
}
