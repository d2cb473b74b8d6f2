package lsp

// https://microsoft.github.io/language-server-protocol/specifications/lsp/3.17/specification/#initialize
type InitializeRequest struct {
	Request
	Params InitializeRequestParams `json:"params"`
}

type InitializeRequestParams struct {
	ProcessID             *int                   `json:"processId"`
	ClientInfo            *ClientInfo            `json:"clientInfo"`
	Locale                string                 `json:"locale"`
	RootPath              *string                `json:"rootPath"`
	RootURI               *string                `json:"rootUri"`
	Trace                 *string                `json:"trace"`
	WorkspaceFolders      []WorkspaceFolder      `json:"workspaceFolders"`
	InitializationOptions *InitializationOptions `json:"initializationOptions"`
}

// InitializationOptions carries the client's formatter settings.
type InitializationOptions struct {
	Perltidy *PerltidySettings `json:"perltidy"`
}

type PerltidySettings struct {
	Executable  *string `json:"executable"`
	Profile     *string `json:"profile"`
	AutoDisable *bool   `json:"autoDisable"`
}

type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type WorkspaceFolder struct {
	URI  string `json:"uri"`
	Name string `json:"name"`
}

type InitializeResponse struct {
	Response
	Result InitializeResult `json:"result"`
}

// https://microsoft.github.io/language-server-protocol/specifications/lsp/3.17/specification/#initializeResult
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   ServerInfo         `json:"serverInfo"`
}

type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type ServerCapabilities struct {
	TextDocumentSync                 int                             `json:"textDocumentSync"`
	DocumentRangeFormattingProvider  bool                            `json:"documentRangeFormattingProvider"`
	DocumentOnTypeFormattingProvider DocumentOnTypeFormattingOptions `json:"documentOnTypeFormattingProvider"`
	ExecuteCommandProvider           ExecuteCommandOptions           `json:"executeCommandProvider"`
}

type DocumentOnTypeFormattingOptions struct {
	FirstTriggerCharacter string   `json:"firstTriggerCharacter"`
	MoreTriggerCharacter  []string `json:"moreTriggerCharacter"`
}

type ExecuteCommandOptions struct {
	Commands []string `json:"commands"`
}

func NewInitializeResponse(id int, capabilities *ServerCapabilities, info *ServerInfo) InitializeResponse {
	return InitializeResponse{
		Response: Response{
			RPC: RPC_VERSION,
			ID:  &id,
		},
		Result: InitializeResult{
			Capabilities: *capabilities,
			ServerInfo:   *info,
		},
	}
}

type ShutdownRequest struct {
	Request
}

type ShutdownResponse struct {
	Response
	Result any `json:"result"`
}
