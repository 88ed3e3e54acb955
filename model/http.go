package model

type InputRequestBody struct {
	Input string `json:"input"`
}

type CompileResponse struct {
	ID    string `json:"id"`
	Score *Score `json:"score"`
}

type PatternResponse struct {
	Runs []SymbolRun `json:"runs"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
	Kind  string `json:"kind"`
}
