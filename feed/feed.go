// Package feed fetches spot prices for assets from JSON HTTP endpoints.
//
// A Source is a URL template plus a jsonpath selector, so any provider that
// serves a price inside a JSON document can be queried without writing a
// dedicated client.
package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// Source describes where and how to read a spot price.
type Source struct {
	// URL is the endpoint to GET; an optional "{symbol}" placeholder is
	// replaced by the queried symbol.
	URL string
	// Path is the jsonpath selector of the price value inside the response.
	Path string

	Client *http.Client
}

// Price fetches the current price for symbol.
func (s Source) Price(symbol string) (decimal.Decimal, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	addr := strings.ReplaceAll(s.URL, "{symbol}", symbol)

	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("error in wget %q: %w", symbol, err)
	}

	jval, err := jsonpath.Get(s.Path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error parsing %q: %q %w", symbol, s.Path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	switch v := jval.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return decimal.Zero, fmt.Errorf("error parsing %q: %q is not a number", symbol, v)
		}
		return decimal.NewFromFloat(f), nil
	default:
		return decimal.Zero, fmt.Errorf("error parsing %q: %q not a number %v", symbol, s.Path, jval)
	}
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(client *http.Client, addr string, data interface{}) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}
