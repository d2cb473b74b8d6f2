package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/krellek/perltidyd/internal/lsp"
	"github.com/krellek/perltidyd/internal/perltidy"
)

type queuedMessage struct {
	method   string
	contents []byte
}

type Server struct {
	name         string
	version      string
	state        State
	writer       io.Writer
	pool         *perltidy.Pool
	formatter    *perltidy.Formatter
	messageQueue chan queuedMessage
	wg           sync.WaitGroup
	mu           sync.Mutex
	cancelled    map[int]bool
	outgoingID   int
}

func NewServer(name, version string, state State, settings perltidy.Settings, writer io.Writer) *Server {
	pool := perltidy.NewPool(settings)
	s := &Server{
		name:         name,
		version:      version,
		state:        state,
		writer:       writer,
		pool:         pool,
		formatter:    perltidy.NewFormatter(pool),
		messageQueue: make(chan queuedMessage),
		cancelled:    make(map[int]bool),
	}

	s.wg.Add(1)
	go s.run()

	return s
}

func (s *Server) run() {
	defer s.wg.Done()
	for msg := range s.messageQueue {
		s.dispatchMessage(msg.method, msg.contents)
	}
}

// HandleMessage queues one decoded message for dispatch. Cancellations are
// recorded immediately so an in-flight format can observe them, everything
// else is processed in order on the dispatch goroutine.
func (s *Server) HandleMessage(method string, contents []byte) {
	if method == "$/cancelRequest" {
		var notification lsp.CancelRequestNotification
		if err := json.Unmarshal(contents, &notification); err != nil {
			slog.Error("Could not parse request", "method", method)
			return
		}
		s.mu.Lock()
		s.cancelled[notification.Params.ID] = true
		s.mu.Unlock()
		return
	}
	s.messageQueue <- queuedMessage{method: method, contents: contents}
}

func (s *Server) Stop() {
	close(s.messageQueue)
	s.wg.Wait()
}

func (s *Server) dispatchMessage(method string, contents []byte) {
	slog.Info("Received message", "method", method)

	switch method {
	case "initialize":
		var request lsp.InitializeRequest
		if err := json.Unmarshal(contents, &request); err != nil {
			slog.Error("Could not parse request", "method", method)
		}

		if request.Params.ClientInfo != nil {
			slog.Info("Connected to client",
				"name", request.Params.ClientInfo.Name,
				"version", request.Params.ClientInfo.Version,
			)
		}

		s.state.WorkspaceFolders = request.Params.WorkspaceFolders
		if len(s.state.WorkspaceFolders) == 0 && request.Params.RootURI != nil {
			s.state.WorkspaceFolders = []lsp.WorkspaceFolder{{URI: *request.Params.RootURI}}
		}
		slog.Info("Workspace folders set", "workspaceFolders", s.state.WorkspaceFolders)

		if options := request.Params.InitializationOptions; options != nil {
			s.applySettings(options.Perltidy)
		}

		capabilities := lsp.ServerCapabilities{
			TextDocumentSync:                1,
			DocumentRangeFormattingProvider: true,
			DocumentOnTypeFormattingProvider: lsp.DocumentOnTypeFormattingOptions{
				FirstTriggerCharacter: ";",
				MoreTriggerCharacter:  []string{"}", ")", "]"},
			},
			ExecuteCommandProvider: lsp.ExecuteCommandOptions{
				Commands: []string{commandTidy},
			},
		}
		info := lsp.ServerInfo{
			Name:    s.name,
			Version: s.version,
		}

		msg := lsp.NewInitializeResponse(request.ID, &capabilities, &info)
		s.writeResponse(msg)

	case "shutdown":
		var request lsp.ShutdownRequest
		if err := json.Unmarshal(contents, &request); err != nil {
			slog.Error("Could not parse request", "method", method)
		}

		slog.Info("Received shutdown request")
		s.state.ShutdownRequested = true
		s.pool.Shutdown()

		response := lsp.ShutdownResponse{
			Response: lsp.Response{
				RPC: lsp.RPC_VERSION,
				ID:  &request.ID,
			},
			Result: nil,
		}
		s.writeResponse(response)

	case "exit":
		slog.Info("Exiting")
		if s.state.ShutdownRequested {
			os.Exit(0)
		} else {
			slog.Warn("Exiting without preceding shutdown request")
			os.Exit(1)
		}

	case "textDocument/didOpen":
		var request lsp.DidOpenTextDocumentNotification
		if err := json.Unmarshal(contents, &request); err != nil {
			slog.Error("Could not parse request", "method", method)
		}

		uri := request.Params.TextDocument.URI
		slog.Info("Opened document", "URI", uri)
		s.state.SetDocument(uri, request.Params.TextDocument.Text)

	case "textDocument/didChange":
		var request lsp.TextDocumentDidChangeNotification
		if err := json.Unmarshal(contents, &request); err != nil {
			slog.Error("Could not parse request", "method", method)
		}

		uri := request.Params.TextDocument.URI
		for _, change := range request.Params.ContentChanges {
			s.state.SetDocument(uri, change.Text)
		}

	case "workspace/didChangeConfiguration":
		var notification lsp.DidChangeConfigurationNotification
		if err := json.Unmarshal(contents, &notification); err != nil {
			slog.Error("Could not parse request", "method", method)
		}
		s.applySettings(notification.Params.Settings.Perltidy)

	case "textDocument/rangeFormatting":
		var request lsp.RangeFormattingRequest
		if err := json.Unmarshal(contents, &request); err != nil {
			slog.Error("Could not parse request", "method", method)
		}
		s.writeResponse(s.handleRangeFormatting(&request))

	case "textDocument/onTypeFormatting":
		var request lsp.OnTypeFormattingRequest
		if err := json.Unmarshal(contents, &request); err != nil {
			slog.Error("Could not parse request", "method", method)
		}
		s.writeResponse(s.handleOnTypeFormatting(&request))

	case "workspace/executeCommand":
		var request lsp.ExecuteCommandRequest
		if err := json.Unmarshal(contents, &request); err != nil {
			slog.Error("Could not parse request", "method", method)
		}
		s.writeResponse(s.handleExecuteCommand(&request))

	}
}

// applySettings merges the fields present in settings into the pool.
func (s *Server) applySettings(settings *lsp.PerltidySettings) {
	if settings == nil {
		return
	}
	current := s.pool.Settings()
	if settings.Executable != nil {
		current.Executable = *settings.Executable
	}
	if settings.Profile != nil {
		current.Profile = *settings.Profile
	}
	if settings.AutoDisable != nil {
		current.AutoDisable = *settings.AutoDisable
	}
	s.pool.SetSettings(current)
	slog.Info("Formatter settings updated",
		"executable", current.Executable,
		"profile", current.Profile,
		"autoDisable", current.AutoDisable,
	)
}

func (s *Server) wasCancelled(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cancelled := s.cancelled[id]
	delete(s.cancelled, id)
	return cancelled
}

// showFormatFailure surfaces a formatting failure to the user. Administrative
// conditions are informational, everything else is an error.
func (s *Server) showFormatFailure(err error) {
	var confErr *perltidy.ConfigurationError
	messageType := lsp.MessageError
	if errors.As(err, &confErr) {
		messageType = lsp.MessageInfo
	}
	s.writeResponse(lsp.NewShowMessageNotification(messageType, err.Error()))
}

// applyEdit asks the client to apply edits to the document at uri.
func (s *Server) applyEdit(label, uri string, edits []lsp.TextEdit) {
	s.mu.Lock()
	s.outgoingID++
	id := s.outgoingID
	s.mu.Unlock()
	s.writeResponse(lsp.NewApplyEditRequest(id, label, uri, edits))
}

func (s *Server) writeResponse(msg any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reply := lsp.EncodeMessage(msg)
	s.writer.Write([]byte(reply))
}
