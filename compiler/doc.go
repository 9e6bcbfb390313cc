// Package compiler translates tiny programs into C++.
//
// Process of compilation:
//
//	Program Text ->
//		lex ->
//	Token Sequence (token) ->
//		parse ->
//	Abstract Syntax Tree (ast) ->
//		back ->
//	C++ Translation Unit
//
// The language:
//
//	program     := statement+
//	statement   := "int" ID "=" expression ";"
//	             | "if" "(" condition ")" "{" program "}"
//	             | ID "++" ";"
//	             | "print" "(" expression ")" ";"
//	condition   := expression "<" expression
//	expression  := expression ("+"|"-") term | term
//	term        := term ("*"|"/") factor | factor
//	factor      := "(" expression ")" | NUMBER | ID
//
// There is no semantic analysis: names are not checked to be declared.
// Integer literals are copied to the output as decimal digits of any length.
package compiler
