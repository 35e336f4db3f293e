package param

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Binding bind query string values into a json-tagged struct. Values that
// parse as integers or booleans are bound as such so numeric fields work.
func Binding(r *http.Request, v interface{}) error {
	values := map[string]interface{}{}
	for key, vs := range r.URL.Query() {
		if len(vs) == 0 {
			continue
		}

		values[key] = typed(vs[0])
	}

	data, err := json.Marshal(values)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, v)
}

func typed(v string) interface{} {
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}

	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}

	return v
}
