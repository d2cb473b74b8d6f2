package server

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/krellek/perltidyd/internal/lsp"
)

const commandTidy = "perltidyd.tidy"

func (s *Server) handleRangeFormatting(request *lsp.RangeFormattingRequest) *lsp.RangeFormattingResponse {
	slog.Info("RANGE-FORMATTING", "params", request.Params)
	response := &lsp.RangeFormattingResponse{
		Response: lsp.Response{
			RPC: lsp.RPC_VERSION,
			ID:  &request.ID,
		},
	}

	uri := request.Params.TextDocument.URI
	document := s.state.Documents[uri].Text
	rng := expandToLineStart(document, request.Params.Range)

	formatted, ok, err := s.formatter.Format(document, rng, s.state.RootOf(uri))
	if err != nil {
		s.showFormatFailure(err)
		return response
	}
	if !ok {
		return response
	}

	response.Result = []lsp.TextEdit{{Range: rng, NewText: formatted}}
	return response
}

func (s *Server) handleOnTypeFormatting(request *lsp.OnTypeFormattingRequest) *lsp.OnTypeFormattingResponse {
	slog.Info("ONTYPE-FORMATTING", "params", request.Params)
	response := &lsp.OnTypeFormattingResponse{
		Response: lsp.Response{
			RPC: lsp.RPC_VERSION,
			ID:  &request.ID,
		},
	}

	if !strings.ContainsAny(request.Params.Ch, statementTerminators) {
		return response
	}

	uri := request.Params.TextDocument.URI
	document := s.state.Documents[uri].Text
	rng := onTypeRange(document, request.Params.Position)

	formatted, ok, err := s.formatter.Format(document, rng, s.state.RootOf(uri))
	if err != nil {
		s.showFormatFailure(err)
		return response
	}
	// The triggering keystroke context may have gone stale while the
	// process was running, in which case the result is discarded.
	if s.wasCancelled(request.ID) {
		return response
	}
	if !ok {
		return response
	}

	response.Result = []lsp.TextEdit{{Range: rng, NewText: formatted}}
	return response
}

// handleExecuteCommand runs the tidy command: format the client's current
// selection, or the whole document when the selection is empty. The edit is
// delivered through a workspace/applyEdit request.
func (s *Server) handleExecuteCommand(request *lsp.ExecuteCommandRequest) *lsp.ExecuteCommandResponse {
	slog.Info("EXECUTE-COMMAND", "command", request.Params.Command)
	response := &lsp.ExecuteCommandResponse{
		Response: lsp.Response{
			RPC: lsp.RPC_VERSION,
			ID:  &request.ID,
		},
	}
	if request.Params.Command != commandTidy {
		slog.Warn("Unknown command", "command", request.Params.Command)
		return response
	}

	var uri string
	var selection *lsp.Range
	args := request.Params.Arguments
	if len(args) > 0 {
		if err := json.Unmarshal(args[0], &uri); err != nil {
			slog.Error("Could not parse command arguments", "command", request.Params.Command)
			return response
		}
	}
	if len(args) > 1 {
		if err := json.Unmarshal(args[1], &selection); err != nil {
			slog.Error("Could not parse command arguments", "command", request.Params.Command)
			return response
		}
	}

	document, ok := s.state.Documents[uri]
	if !ok {
		return response
	}
	rng := commandRange(document.Text, selection)

	formatted, ok, err := s.formatter.Format(document.Text, rng, s.state.RootOf(uri))
	if err != nil {
		s.showFormatFailure(err)
		return response
	}
	if !ok {
		return response
	}

	s.applyEdit("Tidy", uri, []lsp.TextEdit{{Range: rng, NewText: formatted}})
	return response
}
