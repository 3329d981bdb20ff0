package types

type Tokenizer interface {
	Tokenize() []Token
}
