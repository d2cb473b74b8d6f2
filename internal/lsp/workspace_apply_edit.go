package lsp

// ApplyEditRequest is sent server-to-client to apply an edit to a document.
type ApplyEditRequest struct {
	Request
	Params ApplyWorkspaceEditParams `json:"params"`
}

type ApplyWorkspaceEditParams struct {
	Label string        `json:"label,omitempty"`
	Edit  WorkspaceEdit `json:"edit"`
}

type WorkspaceEdit struct {
	Changes map[string][]TextEdit `json:"changes"`
}

func NewApplyEditRequest(id int, label string, uri string, edits []TextEdit) ApplyEditRequest {
	return ApplyEditRequest{
		Request: Request{
			RPC:    RPC_VERSION,
			ID:     id,
			Method: "workspace/applyEdit",
		},
		Params: ApplyWorkspaceEditParams{
			Label: label,
			Edit: WorkspaceEdit{
				Changes: map[string][]TextEdit{
					uri: edits,
				},
			},
		},
	}
}
