package main

import (
	"log"
	"os"

	"github.com/xiam/callexpr"
	"github.com/xiam/callexpr/internal/render"
)

func main() {
	input := `(greet (add 2 (subtract 4 2)) (repeat 3 "Hello <world> & friends!"))`

	nodes, err := callexpr.ParseString(input)
	if err != nil {
		log.Fatal("callexpr.ParseString:", err)
	}

	if err := render.Tree(os.Stdout, render.FormatXML, nodes); err != nil {
		log.Fatal("render.Tree:", err)
	}
}
