package main

import (
	"log"
	"os"

	"github.com/xiam/callexpr/ast"
	"github.com/xiam/callexpr/parser"
)

func main() {
	input := `(greet (add 2 (subtract 4 2)) (repeat 3 "Hello world!"))`

	nodes, err := parser.ParseBytes([]byte(input))
	if err != nil {
		log.Fatal("parser.ParseBytes:", err)
	}

	if err := ast.Print(os.Stdout, nodes...); err != nil {
		log.Fatal("ast.Print:", err)
	}
}
