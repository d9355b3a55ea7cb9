// Package scan classifies single lines of Devicetree source by shape.
//
// Only four shapes are recognised: node openings, label or root extension
// openings, any other opening brace, and block closings. Everything else,
// including properties, comments and preprocessor lines, is Unmatched. The
// patterns are plain RE2 expressions, so classification is linear in the
// length of the line.
package scan

import (
	"regexp"
	"strings"
)

// Kind tags the shape of a classified line.
type Kind int

// Line shapes, in the order they are tried (Unmatched is the fallback).
const (
	Unmatched Kind = iota
	NodeOpen
	LabelOpen
	GenericOpen
	Close
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case NodeOpen:
		return "node-open"
	case LabelOpen:
		return "label-open"
	case GenericOpen:
		return "generic-open"
	case Close:
		return "close"
	default:
		return "unmatched"
	}
}

// RootLabel is the Label of a root node extension line ("/ {").
const RootLabel = "/"

// Shape is the result of classifying one line.
//
// For NodeOpen, Label is the optional label without its colon, S1 the gap
// between label and node name, S2 the gap before the brace and S3 whatever
// follows it. For LabelOpen, Label is the "&name" reference or RootLabel, S1
// the indentation before it, S2 the gap before the brace and S3 the rest.
type Shape struct {
	Kind        Kind
	Label       string
	NodeName    string
	UnitAddress string
	S1          string
	S2          string
	S3          string
}

// IsHeader reports whether the shape opens a node that takes part in style checks.
func (s Shape) IsHeader() bool {
	return s.Kind == NodeOpen || s.Kind == LabelOpen
}

// IsRoot reports whether the shape is a root node extension.
func (s Shape) IsRoot() bool {
	return s.Kind == LabelOpen && s.Label == RootLabel
}

var (
	nodeOpenRe  = regexp.MustCompile(`^\s*(?:(?P<label>[a-zA-Z0-9,_-]+):)?(?P<s1>\s*)(?P<name>[a-zA-Z0-9,_-]+)(?:@(?P<addr>[0-9a-fA-FxX]+))?(?P<s2>\s*)\{(?P<s3>\s*)$`)
	labelOpenRe = regexp.MustCompile(`^(?P<s1>\s*)(?P<label>&[a-zA-Z0-9,_-]+|/)?(?P<s2>\s*)\{(?P<s3>\s*)$`)
	closeRe     = regexp.MustCompile(`\};\s*$`)

	nodeLabel = nodeOpenRe.SubexpIndex("label")
	nodeS1    = nodeOpenRe.SubexpIndex("s1")
	nodeName  = nodeOpenRe.SubexpIndex("name")
	nodeAddr  = nodeOpenRe.SubexpIndex("addr")
	nodeS2    = nodeOpenRe.SubexpIndex("s2")
	nodeS3    = nodeOpenRe.SubexpIndex("s3")

	refS1    = labelOpenRe.SubexpIndex("s1")
	refLabel = labelOpenRe.SubexpIndex("label")
	refS2    = labelOpenRe.SubexpIndex("s2")
	refS3    = labelOpenRe.SubexpIndex("s3")
)

// Classify returns the shape of line. The first matching shape wins.
func Classify(line string) Shape {
	if m := nodeOpenRe.FindStringSubmatch(line); m != nil {
		return Shape{
			Kind:        NodeOpen,
			Label:       m[nodeLabel],
			NodeName:    m[nodeName],
			UnitAddress: m[nodeAddr],
			S1:          m[nodeS1],
			S2:          m[nodeS2],
			S3:          m[nodeS3],
		}
	}

	// A bare "{" has no reference to check and is treated as a generic block.
	if m := labelOpenRe.FindStringSubmatch(line); m != nil && m[refLabel] != "" {
		return Shape{
			Kind:  LabelOpen,
			Label: m[refLabel],
			S1:    m[refS1],
			S2:    m[refS2],
			S3:    m[refS3],
		}
	}

	if strings.Contains(line, "{") {
		return Shape{Kind: GenericOpen}
	}

	if closeRe.MatchString(line) {
		return Shape{Kind: Close}
	}

	return Shape{Kind: Unmatched}
}
