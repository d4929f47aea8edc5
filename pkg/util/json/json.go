package json

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

var api = jsoniter.ConfigCompatibleWithStandardLibrary

var Marshal = api.Marshal
var Unmarshal = api.Unmarshal

// NewEncoder returns a streaming encoder writing one JSON value per line to w.
func NewEncoder(w io.Writer) *jsoniter.Encoder {
	return api.NewEncoder(w)
}
