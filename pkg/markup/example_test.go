package markup_test

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/matzehuels/clickmap/pkg/markup"
)

func ExampleExtract() {
	page := `<div class="clickventure-node clickventure-start" data-node-id="1">
  <div class="clickventure-node-link" data-target-node="2">Left</div>
  <div class="clickventure-node-link clickventure-float" data-target-node="3">Right</div>
</div>
<div class="clickventure-node" data-node-id="2">
  <div class="clickventure-node-link" data-target-node="3">Onward</div>
</div>
<div class="clickventure-node" data-node-id="3"></div>`

	doc, _ := goquery.NewDocumentFromReader(strings.NewReader(page))
	ex, err := markup.Extract(doc)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("Root:", ex.RootID)
	for _, n := range ex.Nodes {
		for _, l := range n.Links {
			fmt.Printf("%d -> %s\n", n.ID, l)
		}
	}
	// Output:
	// Root: 1
	// 1 -> Node 2: Left
	// 1 -> Node 3: Right
	// 2 -> Node 3: Onward
}
