package bruno

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/brumigrate/pkg/workspace"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func request(method string) string {
	return fmt.Sprintf("meta {\n  name: r\n  type: http\n}\n\n%s {\n  url: http://x\n}\n", method)
}

func folderMarker(name string) string {
	return fmt.Sprintf("meta {\n  name: %s\n}\n", name)
}

func TestParser_Collections(t *testing.T) {
	root := t.TempDir()
	coll := filepath.Join(root, "collections", "userapi")
	writeFile(t, filepath.Join(coll, "collection.bru"), "vars:pre-request {\n  baseUrl: x\n}\n")
	writeFile(t, filepath.Join(coll, "Auth", "folder.bru"), folderMarker("Auth"))
	writeFile(t, filepath.Join(coll, "Auth", "login.bru"), request("post"))
	writeFile(t, filepath.Join(coll, "Auth", "logout.bru"), request("post"))
	writeFile(t, filepath.Join(coll, "Users", "folder.bru"), folderMarker("Users"))
	writeFile(t, filepath.Join(coll, "Users", "list.bru"), request("get"))
	writeFile(t, filepath.Join(coll, "Users", "get.bru"), request("get"))
	writeFile(t, filepath.Join(coll, "Users", "create.bru"), request("post"))
	writeFile(t, filepath.Join(coll, "Users", "readme.bru"), "docs {\n  text\n}\n")
	writeFile(t, filepath.Join(root, "collections", "stray", "a.bru"), request("get"))

	p := NewParser(root)
	collections := p.Collections()
	require.Len(t, collections, 1)

	c := collections[0]
	assert.Equal(t, "userapi", c.Name)
	assert.Equal(t, workspace.KindCollection, c.Kind)
	assert.Equal(t, []string{"baseUrl"}, c.Variables)
	assert.Equal(t, 0, c.DirectRequests)
	assert.Equal(t, 5, c.TotalRequests)
	assert.Equal(t, 2, c.DirectFolders)
	assert.Equal(t, 2, c.TotalFolders)

	require.Len(t, c.Children, 2)
	assert.Equal(t, "Auth", c.Children[0].Name)
	assert.Equal(t, 2, c.Children[0].DirectRequests)
	assert.Equal(t, "Users", c.Children[1].Name)
	assert.Equal(t, 3, c.Children[1].DirectRequests)

	require.NoError(t, c.CheckAggregation())
	assert.Empty(t, p.Warnings())
}

func TestParser_FolderNameFromMeta(t *testing.T) {
	root := t.TempDir()
	coll := filepath.Join(root, "collections", "api")
	writeFile(t, filepath.Join(coll, "collection.bru"), "")
	writeFile(t, filepath.Join(coll, "my_folder", "folder.bru"), folderMarker("My Folder"))
	writeFile(t, filepath.Join(coll, "plain", "folder.bru"), "")

	c := NewParser(root).Collections()[0]
	require.Len(t, c.Children, 2)
	assert.Equal(t, "My Folder", c.Children[0].Name)
	assert.Equal(t, "plain", c.Children[1].Name)
}

func TestParser_TransparentDirectories(t *testing.T) {
	root := t.TempDir()
	coll := filepath.Join(root, "collections", "api")
	writeFile(t, filepath.Join(coll, "collection.bru"), "")
	writeFile(t, filepath.Join(coll, "root.bru"), request("get"))
	writeFile(t, filepath.Join(coll, "misc", "loose.bru"), request("get"))
	writeFile(t, filepath.Join(coll, "misc", "Nested", "folder.bru"), folderMarker("Nested"))
	writeFile(t, filepath.Join(coll, "misc", "Nested", "a.bru"), request("put"))
	writeFile(t, filepath.Join(coll, "Top", "folder.bru"), folderMarker("Top"))
	writeFile(t, filepath.Join(coll, "Top", "extra", "b.bru"), request("patch"))
	writeFile(t, filepath.Join(coll, "Top", "c.bru"), request("post"))

	c := NewParser(root).Collections()[0]

	assert.Equal(t, 2, c.DirectRequests)
	assert.Equal(t, 5, c.TotalRequests)
	assert.Equal(t, 2, c.TotalFolders)

	var names []string
	for _, f := range c.Flatten() {
		names = append(names, f.Name)
	}
	// ReadDir order is bytewise, so "Top" sorts before "misc".
	assert.Equal(t, []string{"Top", "Nested"}, names)
	// Requests under a non-folder sub-directory count toward the folder.
	top := c.Children[0]
	assert.Equal(t, 2, top.DirectRequests)
	assert.Equal(t, 2, top.TotalRequests)
	assert.Empty(t, top.Children)
	assert.Equal(t, 1, c.Children[1].TotalRequests)
	require.NoError(t, c.CheckAggregation())
}

func TestParser_Environments(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "environments", "dev.yml"), "name: dev\nvariables:\n  - name: a\n  - name: b\n")
	writeFile(t, filepath.Join(root, "environments", "prod.yml"), "variables:\n")
	writeFile(t, filepath.Join(root, "environments", "ignored.yaml"), "name: nope\n")

	envs := NewParser(root).Environments()
	require.Len(t, envs, 2)
	assert.Equal(t, "dev", envs[0].Name)
	assert.Equal(t, 2, envs[0].VariableCount())
	assert.Equal(t, "prod", envs[1].Name)
	assert.Equal(t, 0, envs[1].VariableCount())
}

func TestParser_MissingLayout(t *testing.T) {
	s := NewParser(filepath.Join(t.TempDir(), "missing")).Parse()
	assert.Empty(t, s.Collections)
	assert.Empty(t, s.Environments)
	assert.Nil(t, s.Globals)
}

// buildRandomDir lays out a random folder tree under dir and returns the
// number of request files and folder directories it created.
func buildRandomDir(t *testing.T, r *rand.Rand, dir string, depth int) (int, int) {
	requests, folders := 0, 0
	for i := range r.IntN(4) {
		writeFile(t, filepath.Join(dir, fmt.Sprintf("r%d.bru", i)), request("get"))
		requests++
	}
	if depth == 0 {
		return requests, folders
	}
	for i := range r.IntN(3) {
		sub := filepath.Join(dir, fmt.Sprintf("d%d", i))
		if r.IntN(4) > 0 {
			writeFile(t, filepath.Join(sub, "folder.bru"), folderMarker(fmt.Sprintf("f%d", i)))
			folders++
		} else {
			require.NoError(t, os.MkdirAll(sub, 0o755))
		}
		rq, fd := buildRandomDir(t, r, sub, depth-1)
		requests += rq
		folders += fd
	}
	return requests, folders
}

func TestParser_AggregationHoldsForRandomTrees(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	for i := range 15 {
		root := t.TempDir()
		coll := filepath.Join(root, "collections", "c")
		writeFile(t, filepath.Join(coll, "collection.bru"), "")
		requests, folders := buildRandomDir(t, r, coll, 3)

		c := NewParser(root).Collections()[0]
		require.NoError(t, c.CheckAggregation(), "tree %d", i)
		assert.Equal(t, requests, c.TotalRequests, "tree %d", i)
		assert.Equal(t, folders, c.TotalFolders, "tree %d", i)
	}
}
