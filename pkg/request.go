package pkg

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// QueryInt reads an integer query parameter, returning def when it is absent.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("query param %s [%s] is not an integer", name, raw)
	}
	return v, nil
}

// QueryOptionalInt reads an integer query parameter, returning nil when it is absent.
func QueryOptionalInt(r *http.Request, name string) (*int, error) {
	if strings.TrimSpace(r.URL.Query().Get(name)) == "" {
		return nil, nil
	}
	v, err := QueryInt(r, name, 0)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
