package commands

import "errors"

var (
	errEmptyEntry = errors.New("requires the text of the entry")
	errNoID       = errors.New("requires at least one entry id")
)
