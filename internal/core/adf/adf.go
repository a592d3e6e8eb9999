// Package adf extracts plain text and mention references from Atlassian
// Document Format trees (the rich body format Jira uses for comments)
package adf

import (
	"encoding/json"
	"strings"
)

// Node is one node of an ADF tree. Only the fields the extractor cares
// about are modeled; anything else in the payload is ignored on decode
type Node struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Attrs   *Attrs `json:"attrs,omitempty"`
	Content []Node `json:"content,omitempty"`
}

// Attrs carries the node attributes used by emoji and mention nodes
type Attrs struct {
	// ID is the mention account id (mention nodes)
	ID string `json:"id,omitempty"`
	// Text is the display payload: the glyph for emoji nodes, "@Name" for mentions
	Text string `json:"text,omitempty"`
	// ShortName is the emoji short code, e.g. ":rocket:"
	ShortName string `json:"shortName,omitempty"`
}

// Doc is a full ADF document ({"type":"doc","version":1,"content":[...]})
type Doc struct {
	Type    string `json:"type"`
	Version int    `json:"version"`
	Content []Node `json:"content"`
}

// Mention is a mention reference found during extraction.
// AccountID may be empty when the payload omitted it
type Mention struct {
	DisplayName string
	AccountID   string
}

// Extract walks a raw ADF body and returns its plain text plus the mention
// references encountered, in pre-order traversal order.
//
// The body may be a full document object or the content array directly;
// both forms show up in webhook payloads. Absent or malformed input yields
// ("", nil): the function is total over untrusted input and never fails
func Extract(body []byte) (string, []Mention) {
	nodes := decode(body)
	if len(nodes) == 0 {
		return "", nil
	}
	return ExtractNodes(nodes)
}

// ExtractNodes is Extract over an already-decoded node sequence
func ExtractNodes(nodes []Node) (string, []Mention) {
	var sb strings.Builder
	var mentions []Mention
	walk(nodes, &sb, &mentions)
	return strings.TrimSpace(sb.String()), mentions
}

// decode tolerates a doc object, a bare content array, or garbage
func decode(body []byte) []Node {
	if len(body) == 0 {
		return nil
	}
	var doc Doc
	if err := json.Unmarshal(body, &doc); err == nil && len(doc.Content) > 0 {
		return doc.Content
	}
	var nodes []Node
	if err := json.Unmarshal(body, &nodes); err == nil {
		return nodes
	}
	return nil
}

// walk appends text in child order; depth-first, pre-order
func walk(nodes []Node, sb *strings.Builder, mentions *[]Mention) {
	for i := range nodes {
		n := &nodes[i]
		switch n.Type {
		case "text":
			sb.WriteString(n.Text)
		case "emoji":
			if n.Attrs != nil {
				sb.WriteString(n.Attrs.Text)
			}
		case "mention":
			// mentions are tracked out-of-band, never inlined into plain text
			if n.Attrs != nil {
				*mentions = append(*mentions, Mention{
					DisplayName: strings.TrimPrefix(n.Attrs.Text, "@"),
					AccountID:   n.Attrs.ID,
				})
			}
		default:
			if len(n.Content) > 0 {
				walk(n.Content, sb, mentions)
			}
		}
	}
}
