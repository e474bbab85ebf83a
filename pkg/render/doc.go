// Package render turns adventure graphs into images.
//
// The [nodelink] subpackage draws an adventure as a node-link diagram laid
// out by Graphviz, with the start node highlighted and the adventure title
// above the figure.
//
// [nodelink]: github.com/matzehuels/clickmap/pkg/render/nodelink
package render
