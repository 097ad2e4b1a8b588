package filler

import (
	"strings"

	"github.com/jonathan/jobfiller/internal/fields"
	"github.com/jonathan/jobfiller/internal/resumepath"
	"github.com/jonathan/jobfiller/internal/types"
)

const (
	pathFullName  = "personal.name"
	pathFirstName = "personal.firstName"
	pathLastName  = "personal.lastName"
)

// Name is a full name split into a first token and the rest.
type Name struct {
	First string
	Last  string
}

// SplitName splits on whitespace: the first token is the first name, the rest the last name.
func SplitName(full string) Name {
	tokens := strings.Fields(full)
	switch len(tokens) {
	case 0:
		return Name{}
	case 1:
		return Name{First: tokens[0]}
	default:
		return Name{First: tokens[0], Last: strings.Join(tokens[1:], " ")}
	}
}

// ResolveValue reads path from doc. A full name matched by a first- or last-name field is split,
// and a missing first or last name is derived from the full name.
func ResolveValue(doc types.Document, path string, id fields.Identifier) string {
	value := resumepath.Get(doc, path)

	switch path {
	case pathFullName:
		needle := id.Needle()
		if strings.Contains(needle, "first") {
			return SplitName(value).First
		}
		if strings.Contains(needle, "last") {
			return SplitName(value).Last
		}
	case pathFirstName:
		if value == "" {
			return SplitName(resumepath.Get(doc, pathFullName)).First
		}
	case pathLastName:
		if value == "" {
			return SplitName(resumepath.Get(doc, pathFullName)).Last
		}
	}
	return value
}
