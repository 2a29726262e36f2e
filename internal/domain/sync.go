package domain

import "encoding/json"

// PendingFile is a generated file the meet's relay agent has not acknowledged.
type PendingFile struct {
	Filename string          `json:"filename"`
	Content  json.RawMessage `json:"content"`
}
