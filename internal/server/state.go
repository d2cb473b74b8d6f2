package server

import (
	"strings"

	"github.com/krellek/perltidyd/internal/lsp"
	"github.com/krellek/perltidyd/internal/perltidy"
	"github.com/krellek/perltidyd/internal/utils"
)

type Document struct {
	Text string
}

type State struct {
	Documents         map[string]Document
	WorkspaceFolders  []lsp.WorkspaceFolder
	ShutdownRequested bool
}

func NewState() State {
	return State{
		Documents: make(map[string]Document),
	}
}

func (s *State) SetDocument(uri, documentText string) {
	s.Documents[uri] = Document{Text: documentText}
}

// RootOf returns the workspace root owning uri, or nil when the document
// lies outside every workspace folder.
func (s *State) RootOf(uri string) *perltidy.Root {
	for _, folder := range s.WorkspaceFolders {
		folderURI := strings.TrimSuffix(folder.URI, "/")
		if uri == folderURI || strings.HasPrefix(uri, folderURI+"/") {
			root := perltidy.Root{URI: folderURI}
			// Roots outside a real filesystem keep an empty path.
			if path, err := utils.UriToPath(folderURI); err == nil {
				root.Path = path
			}
			return &root
		}
	}
	return nil
}
