package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUriToPath(t *testing.T) {
	path, err := UriToPath("file:///home/user/project")
	require.NoError(t, err)
	require.Equal(t, "/home/user/project", path)

	_, err = UriToPath("untitled:Untitled-1")
	require.Error(t, err)

	_, err = UriToPath("vscode-vfs://github/owner/repo")
	require.Error(t, err)
}

func TestPathToURIRoundTrip(t *testing.T) {
	uri := PathToURI("/home/user/project")
	require.Equal(t, "file:///home/user/project", uri)

	path, err := UriToPath(uri)
	require.NoError(t, err)
	require.Equal(t, "/home/user/project", path)
}
