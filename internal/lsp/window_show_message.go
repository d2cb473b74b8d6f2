package lsp

type MessageType int

const (
	MessageError MessageType = iota + 1
	MessageWarning
	MessageInfo
	MessageLog
)

type ShowMessageNotification struct {
	Notification
	Params ShowMessageParams `json:"params"`
}

type ShowMessageParams struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

func NewShowMessageNotification(messageType MessageType, message string) ShowMessageNotification {
	return ShowMessageNotification{
		Notification: Notification{
			RPC:    RPC_VERSION,
			Method: "window/showMessage",
		},
		Params: ShowMessageParams{
			Type:    messageType,
			Message: message,
		},
	}
}
