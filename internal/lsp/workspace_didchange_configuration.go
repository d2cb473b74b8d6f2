package lsp

type DidChangeConfigurationNotification struct {
	Notification
	Params DidChangeConfigurationParams `json:"params"`
}

type DidChangeConfigurationParams struct {
	Settings ConfigurationSettings `json:"settings"`
}

type ConfigurationSettings struct {
	Perltidy *PerltidySettings `json:"perltidy"`
}
