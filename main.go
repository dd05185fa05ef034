package main

import "github.com/WilhelmBerggren/rs-lisp/cmd"

func main() {
	cmd.Execute()
}
