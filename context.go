package rapor

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// ContextMap turns a typed report context into the plain mapping the template
// walks: objects become map[string]interface{}, arrays []interface{}, numbers float64.
// Field names follow the json tags of the context struct.
func ContextMap(v interface{}) (map[string]interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "encode render context")
	}
	var out map[string]interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, errors.Wrap(err, "render context must be an object")
	}
	if out == nil {
		return nil, errors.New("render context must be an object")
	}
	return out, nil
}
