package main

import "github.com/alphios72/NewsinsightUI/cmd"

func main() {
	cmd.Execute()
}
