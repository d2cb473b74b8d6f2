package lsp

type RangeFormattingRequest struct {
	Request
	Params RangeFormattingParams `json:"params"`
}

type RangeFormattingParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Range        Range                  `json:"range"`
	Options      FormattingOptions      `json:"options"`
}

type FormattingOptions struct {
	TabSize                uint `json:"tabSize"`
	InsertSpaces           bool `json:"insertSpaces"`
	TrimTrailingWhiteSpace bool `json:"trimTrailingWhiteSpace"`
	InsertFinalNewLine     bool `json:"insertFinalNewLine"`
	TrimFinalNewLines      bool `json:"trimFinalNewLines"`
}

type RangeFormattingResponse struct {
	Response
	Result []TextEdit `json:"result"`
}
