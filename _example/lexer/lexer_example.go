package main

import (
	"fmt"
	"log"

	"github.com/xiam/callexpr/lexer"
)

func main() {
	input := `
		(greet "Hello world!"
			(add 2 (subtract 4 2))
			(repeat 3 "!"))
	`

	tokens, err := lexer.Tokenize(input)
	if err != nil {
		log.Fatal("lexer.Tokenize:", err)
	}

	for i, tok := range tokens {
		pos := tok.Pos()
		fmt.Printf("token[%d] (type: %v, line: %d, col: %d)\n\t-> %q\n\n", i, tok.Type(), pos.Line, pos.Column, tok.Text())
	}
}
