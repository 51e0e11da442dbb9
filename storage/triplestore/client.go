// Package triplestore talks to a remote SPARQL endpoint (Fuseki-style): reads
// are SELECT/ASK documents POSTed to the query endpoint and decoded from JSON
// result bindings, writes are update documents POSTed to the update endpoint.
// It also owns the generic entity mapping: per-entity field specs, literal
// escaping, IRI minting and the delete+insert patch builder shared by every
// repository in this package.
package triplestore

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trelixedu/trelix/core"
)

var (
	// ErrUnavailable covers every transport-level failure: endpoint
	// unreachable, non-2xx status, malformed response body. It never crosses
	// the repository boundary unconverted.
	ErrUnavailable = errors.New("triplestore unavailable")

	// ErrInvalidIRI is returned when a caller-supplied resource identifier
	// cannot be safely interpolated into a query.
	ErrInvalidIRI = errors.New("invalid resource IRI")
)

type (
	// Term is one RDF term from a result binding.
	Term struct {
		Type     string `json:"type"` // uri | literal | bnode
		Value    string `json:"value"`
		Datatype string `json:"datatype,omitempty"`
		Lang     string `json:"xml:lang,omitempty"`
	}

	// Row maps result variable names to terms. Unbound variables are simply
	// absent; accessors treat absence as the zero value, never an error.
	Row map[string]Term

	selectResult struct {
		Results struct {
			Bindings []Row `json:"bindings"`
		} `json:"results"`
		Boolean *bool `json:"boolean"` // ASK responses
	}

	Client struct {
		queryURL  string
		updateURL string
		http      *http.Client
		logger    core.Logger
	}
)

func NewClient(conf core.StoreConfig, logger core.Logger) *Client {
	timeout := conf.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		queryURL:  conf.QueryURL,
		updateURL: conf.UpdateURL,
		http:      &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

func (c *Client) post(ctx context.Context, url, contentType, accept, body string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	return c.http.Do(req)
}

func (c *Client) query(ctx context.Context, query string) (*selectResult, error) {
	resp, err := c.post(ctx, c.queryURL, "application/sparql-query", "application/sparql-results+json", query)
	if err != nil {
		c.logger.Error("triplestore: query transport failure", err)
		return nil, errors.Wrap(ErrUnavailable, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("triplestore: query rejected", resp.Status, query)
		return nil, errors.Wrap(ErrUnavailable, resp.Status)
	}

	var res selectResult
	if err = json.NewDecoder(resp.Body).Decode(&res); err != nil {
		c.logger.Error("triplestore: malformed query response", err)
		return nil, errors.Wrap(ErrUnavailable, err.Error())
	}
	return &res, nil
}

// Select runs a SELECT query and returns its binding rows.
func (c *Client) Select(ctx context.Context, query string) ([]Row, error) {
	res, err := c.query(ctx, query)
	if err != nil {
		return nil, err
	}
	return res.Results.Bindings, nil
}

// Ask runs an ASK query.
func (c *Client) Ask(ctx context.Context, query string) (bool, error) {
	res, err := c.query(ctx, query)
	if err != nil {
		return false, err
	}
	if res.Boolean == nil {
		c.logger.Error("triplestore: ASK response missing boolean", query)
		return false, errors.Wrap(ErrUnavailable, "missing boolean in ASK response")
	}
	return *res.Boolean, nil
}

// Update runs a SPARQL update statement. The store treats deleting
// non-existent triples as a no-op, so delete-then-insert patterns are safe to
// repeat. No retries: a failed write is reported once to the caller.
func (c *Client) Update(ctx context.Context, stmt string) error {
	resp, err := c.post(ctx, c.updateURL, "application/sparql-update", "", stmt)
	if err != nil {
		c.logger.Error("triplestore: update transport failure", err)
		return errors.Wrap(ErrUnavailable, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("triplestore: update rejected", resp.Status, stmt)
		return errors.Wrap(ErrUnavailable, resp.Status)
	}
	return nil
}

// Row accessors

func (r Row) Has(name string) bool { return r[name].Value != "" }

func (r Row) String(name string) string { return r[name].Value }

func (r Row) IRI(name string) string { return r[name].Value }

func (r Row) Int(name string) int {
	n, _ := strconv.Atoi(r[name].Value)
	return n
}

// IntPtr distinguishes an absent integer binding from a zero one.
func (r Row) IntPtr(name string) *int {
	if !r.Has(name) {
		return nil
	}
	n, err := strconv.Atoi(r[name].Value)
	if err != nil {
		return nil
	}
	return &n
}

func (r Row) Float(name string) float64 {
	f, _ := strconv.ParseFloat(r[name].Value, 64)
	return f
}

func (r Row) Bool(name string) bool {
	return strings.EqualFold(r[name].Value, "true")
}

// Time parses xsd:dateTime and xsd:date bindings; absent or unparsable
// values yield the zero time.
func (r Row) Time(name string) time.Time {
	val := r[name].Value
	if val == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, val); err == nil {
			return t
		}
	}
	return time.Time{}
}
