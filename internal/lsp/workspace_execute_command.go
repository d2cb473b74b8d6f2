package lsp

import "encoding/json"

type ExecuteCommandRequest struct {
	Request
	Params ExecuteCommandParams `json:"params"`
}

type ExecuteCommandParams struct {
	Command   string            `json:"command"`
	Arguments []json.RawMessage `json:"arguments"`
}

type ExecuteCommandResponse struct {
	Response
	Result any `json:"result"`
}
