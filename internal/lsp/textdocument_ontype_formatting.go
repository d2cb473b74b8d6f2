package lsp

// https://microsoft.github.io/language-server-protocol/specifications/lsp/3.17/specification/#textDocument_onTypeFormatting
type OnTypeFormattingRequest struct {
	Request
	Params OnTypeFormattingParams `json:"params"`
}

type OnTypeFormattingParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
	Ch           string                 `json:"ch"`
	Options      FormattingOptions      `json:"options"`
}

type OnTypeFormattingResponse struct {
	Response
	Result []TextEdit `json:"result"`
}
