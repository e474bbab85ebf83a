package markup

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/clickmap/pkg/errors"
)

const threeNodePage = `<html><head><title>Three Nodes | Boilerplate</title></head><body>
<div class="clickventure-node clickventure-start " data-node-id="1">
  <p>You wake up.</p>
  <div class="clickventure-node-link " data-target-node="2">Get up</div>
  <div class="clickventure-node-link " data-target-node="3">Go back to sleep</div>
</div>
<div class="clickventure-node  " data-node-id="2">
  <div class="clickventure-node-link " data-target-node="3">Lie down again</div>
</div>
<div class="clickventure-node  " data-node-id="3">
  <p>The end.</p>
</div>
</body></html>`

func mustDoc(t *testing.T, page string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestExtract_ThreeNodes(t *testing.T) {
	ex, err := Extract(mustDoc(t, threeNodePage))
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	if ex.RootID != 1 {
		t.Errorf("RootID = %d, want 1", ex.RootID)
	}
	want := []Edge{{1, 2}, {1, 3}, {2, 3}}
	if diff := cmp.Diff(want, ex.Edges); diff != "" {
		t.Errorf("Edges mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, ex.NodeIDs()); diff != "" {
		t.Errorf("NodeIDs mismatch (-want +got):\n%s", diff)
	}
	if !ex.Nodes[0].Start {
		t.Error("first node should be marked as start")
	}
	if ex.Nodes[1].Start {
		t.Error("node 2 should not be marked as start")
	}
}

func TestExtract_Deterministic(t *testing.T) {
	first, err := Extract(mustDoc(t, threeNodePage))
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Extract(mustDoc(t, threeNodePage))
		if err != nil {
			t.Fatalf("Extract() error: %v", err)
		}
		if again.RootID != first.RootID {
			t.Fatalf("RootID changed between runs: %d vs %d", again.RootID, first.RootID)
		}
		if diff := cmp.Diff(first.Edges, again.Edges); diff != "" {
			t.Fatalf("Edges changed between runs (-first +again):\n%s", diff)
		}
	}
}

func TestExtract_FloatingLinks(t *testing.T) {
	page := `<div class="clickventure-node clickventure-start" data-node-id="10">
  <div class="clickventure-node-link" data-target-node="11">A</div>
  <div class="clickventure-node-link clickventure-float" data-target-node="12">B</div>
</div>
<div class="clickventure-node" data-node-id="11">
  <div class="clickventure-node-link clickventure-float" data-target-node="13">C</div>
  <div class="clickventure-node-link" data-target-node="12">D</div>
  <div class="clickventure-node-link clickventure-float" data-target-node="10">E</div>
</div>
<div class="clickventure-node" data-node-id="12"></div>
<div class="clickventure-node" data-node-id="13"></div>`

	ex, err := Extract(mustDoc(t, page))
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	counts := map[int]int{}
	for _, e := range ex.Edges {
		counts[e.From]++
	}
	if counts[10] != 2 {
		t.Errorf("edges from root = %d, want 1 normal + 1 float", counts[10])
	}
	if counts[11] != 3 {
		t.Errorf("edges from node 11 = %d, want 1 normal + 2 float", counts[11])
	}

	// Normal links precede floating links within a node.
	want := []Edge{{10, 11}, {10, 12}, {11, 12}, {11, 13}, {11, 10}}
	if diff := cmp.Diff(want, ex.Edges); diff != "" {
		t.Errorf("Edges mismatch (-want +got):\n%s", diff)
	}

	links := ex.Nodes[1].Links
	if links[0].Float || !links[1].Float || !links[2].Float {
		t.Errorf("Float flags = %v %v %v, want false true true", links[0].Float, links[1].Float, links[2].Float)
	}
}

func TestExtract_RootVariants(t *testing.T) {
	tests := []struct {
		name  string
		class string
	}{
		{"start", "clickventure-node clickventure-start "},
		{"node-start", "clickventure-node clickventure-node-start "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := `<div class="` + tt.class + `" data-node-id="7">
  <div class="clickventure-node-link " data-target-node="8">Go</div>
</div>
<div class="clickventure-node  " data-node-id="8"></div>`

			ex, err := Extract(mustDoc(t, page))
			if err != nil {
				t.Fatalf("Extract() error: %v", err)
			}
			if ex.RootID != 7 {
				t.Errorf("RootID = %d, want 7", ex.RootID)
			}
			if diff := cmp.Diff([]Edge{{7, 8}}, ex.Edges); diff != "" {
				t.Errorf("Edges mismatch (-want +got):\n%s", diff)
			}
			if len(ex.Nodes) != 2 {
				t.Errorf("len(Nodes) = %d, want 2 (start node must not be walked twice)", len(ex.Nodes))
			}
		})
	}
}

func TestExtract_StartWithoutChoices(t *testing.T) {
	page := `<div class="clickventure-node clickventure-start" data-node-id="4"><p>Nothing to do.</p></div>`

	ex, err := Extract(mustDoc(t, page))
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if ex.RootID != 4 {
		t.Errorf("RootID = %d, want 4", ex.RootID)
	}
	if len(ex.Edges) != 0 {
		t.Errorf("len(Edges) = %d, want 0", len(ex.Edges))
	}
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name string
		page string
		code errors.Code
	}{
		{
			name: "no root",
			page: `<div class="clickventure-node" data-node-id="1"></div>`,
			code: errors.ErrCodeRootNotFound,
		},
		{
			name: "empty page",
			page: `<html><body></body></html>`,
			code: errors.ErrCodeRootNotFound,
		},
		{
			name: "non-numeric target",
			page: `<div class="clickventure-node clickventure-start" data-node-id="1">
  <div class="clickventure-node-link" data-target-node="2">ok</div>
  <div class="clickventure-node-link" data-target-node="two">bad</div>
</div>`,
			code: errors.ErrCodeInvalidMarkup,
		},
		{
			name: "missing target",
			page: `<div class="clickventure-node clickventure-start" data-node-id="1"></div>
<div class="clickventure-node" data-node-id="2">
  <div class="clickventure-node-link clickventure-float">bad</div>
</div>`,
			code: errors.ErrCodeInvalidMarkup,
		},
		{
			name: "missing node id",
			page: `<div class="clickventure-node clickventure-start" data-node-id="1"></div>
<div class="clickventure-node"></div>`,
			code: errors.ErrCodeInvalidMarkup,
		},
		{
			name: "non-numeric root id",
			page: `<div class="clickventure-node clickventure-start" data-node-id="start"></div>`,
			code: errors.ErrCodeInvalidMarkup,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex, err := Extract(mustDoc(t, tt.page))
			if err == nil {
				t.Fatal("Extract() expected error")
			}
			if ex != nil {
				t.Error("Extract() returned a partial result alongside an error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Extract() code = %v, want %v (err: %v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestFindNode(t *testing.T) {
	doc := mustDoc(t, threeNodePage)

	n, err := FindNode(doc, 2)
	if err != nil {
		t.Fatalf("FindNode(2) error: %v", err)
	}
	if n.Start {
		t.Error("node 2 should not be a start node")
	}
	if len(n.Links) != 1 || n.Links[0].Target != 3 {
		t.Errorf("node 2 links = %v, want [Node 3: Lie down again]", n.Links)
	}

	root, err := FindNode(doc, 1)
	if err != nil {
		t.Fatalf("FindNode(1) error: %v", err)
	}
	if !root.Start {
		t.Error("node 1 should be a start node")
	}
	if !strings.Contains(root.Text, "You wake up.") {
		t.Errorf("root text = %q, want it to contain the passage", root.Text)
	}

	if _, err := FindNode(doc, 99); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("FindNode(99) error = %v, want NOT_FOUND", err)
	}
}
