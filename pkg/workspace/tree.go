package workspace

import "fmt"

// Flatten returns every descendant folder of n in depth-first pre-order.
// The node itself is not included.
func (n *Node) Flatten() []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(parent *Node) {
		for _, child := range parent.Children {
			out = append(out, child)
			walk(child)
		}
	}
	if n != nil {
		walk(n)
	}
	return out
}

// Aggregate recomputes the recursive counts of n and its descendants from
// their direct counts. DirectFolders is set to the number of children.
func (n *Node) Aggregate() {
	if n == nil {
		return
	}
	n.DirectFolders = len(n.Children)
	n.TotalRequests = n.DirectRequests
	n.TotalFolders = n.DirectFolders
	for _, child := range n.Children {
		child.Aggregate()
		n.TotalRequests += child.TotalRequests
		n.TotalFolders += child.TotalFolders
	}
}

// AggregationError reports a node whose recursive counts disagree with its
// direct counts and children.
type AggregationError struct {
	Path     string
	Field    string
	Expected int
	Actual   int
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("%s: %s is %d, expected %d", e.Path, e.Field, e.Actual, e.Expected)
}

// CheckAggregation verifies the aggregation law for n and every descendant:
// total = direct + sum of children totals, for requests and folders alike.
func (n *Node) CheckAggregation() error {
	if n == nil {
		return nil
	}
	requests := n.DirectRequests
	folders := n.DirectFolders
	for _, child := range n.Children {
		if err := child.CheckAggregation(); err != nil {
			return err
		}
		requests += child.TotalRequests
		folders += child.TotalFolders
	}
	if n.DirectRequests > n.TotalRequests {
		return &AggregationError{Path: n.Path, Field: "directRequestCount", Expected: n.TotalRequests, Actual: n.DirectRequests}
	}
	if requests != n.TotalRequests {
		return &AggregationError{Path: n.Path, Field: "requestCount", Expected: requests, Actual: n.TotalRequests}
	}
	if folders != n.TotalFolders {
		return &AggregationError{Path: n.Path, Field: "folderCount", Expected: folders, Actual: n.TotalFolders}
	}
	return nil
}

// CheckAggregation runs Node.CheckAggregation over every collection.
func (s *Summary) CheckAggregation() error {
	for _, c := range s.Collections {
		if err := c.CheckAggregation(); err != nil {
			return err
		}
	}
	return nil
}
