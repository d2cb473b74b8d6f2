package lsp

type CancelRequestNotification struct {
	Notification
	Params CancelParams `json:"params"`
}

type CancelParams struct {
	ID int `json:"id"`
}
