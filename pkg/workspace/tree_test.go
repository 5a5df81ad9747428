package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *Node {
	return &Node{
		Name:           "User API",
		Path:           "collections/User API.json",
		Kind:           KindCollection,
		DirectRequests: 3,
		Children: []*Node{
			{
				Name:           "Auth",
				Path:           "Auth",
				Kind:           KindFolder,
				DirectRequests: 2,
				Children: []*Node{
					{Name: "Tokens", Path: "Auth/Tokens", Kind: KindFolder, DirectRequests: 1},
				},
			},
			{Name: "Users", Path: "Users", Kind: KindFolder, DirectRequests: 4},
		},
	}
}

func TestAggregate(t *testing.T) {
	root := sampleTree()
	root.Aggregate()

	assert.Equal(t, 10, root.TotalRequests)
	assert.Equal(t, 2, root.DirectFolders)
	assert.Equal(t, 3, root.TotalFolders)

	auth := root.Children[0]
	assert.Equal(t, 3, auth.TotalRequests)
	assert.Equal(t, 1, auth.DirectFolders)
	assert.Equal(t, 1, auth.TotalFolders)

	require.NoError(t, root.CheckAggregation())
}

func TestFlatten_PreOrder(t *testing.T) {
	root := sampleTree()

	var names []string
	for _, f := range root.Flatten() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Auth", "Tokens", "Users"}, names)
}

func TestFlatten_NilAndLeaf(t *testing.T) {
	var n *Node
	assert.Empty(t, n.Flatten())
	assert.Empty(t, (&Node{Name: "leaf"}).Flatten())
}

func TestCheckAggregation_DetectsMismatch(t *testing.T) {
	tests := []struct {
		name  string
		tweak func(*Node)
		field string
	}{
		{
			name:  "request total too small",
			tweak: func(n *Node) { n.TotalRequests-- },
			field: "requestCount",
		},
		{
			name:  "folder total too large",
			tweak: func(n *Node) { n.TotalFolders++ },
			field: "folderCount",
		},
		{
			name:  "child mismatch surfaces",
			tweak: func(n *Node) { n.Children[0].TotalRequests = 99 },
			field: "requestCount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := sampleTree()
			root.Aggregate()
			tt.tweak(root)

			err := root.CheckAggregation()
			require.Error(t, err)
			var aggErr *AggregationError
			require.ErrorAs(t, err, &aggErr)
			assert.Equal(t, tt.field, aggErr.Field)
		})
	}
}

func TestSummaryTotals(t *testing.T) {
	a := sampleTree()
	a.Aggregate()
	b := &Node{Name: "Other", Kind: KindCollection, DirectRequests: 5}
	b.Aggregate()

	s := &Summary{Root: "/tmp/ws", Collections: []*Node{a, b}}
	assert.Equal(t, 15, s.TotalRequests())
	assert.Equal(t, 3, s.TotalFolders())
	assert.NoError(t, s.CheckAggregation())
}

func TestVariableCount(t *testing.T) {
	var n *Node
	assert.Equal(t, 0, n.VariableCount())
	assert.Equal(t, 3, (&Node{Variables: []string{"a", "a", "b"}}).VariableCount())
}
