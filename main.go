package main

import "github.com/ValentinKolb/fcol/cmd"

func main() {
	cmd.Execute()
}
