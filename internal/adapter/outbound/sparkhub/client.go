// Package sparkhub is the typed client for the SparkHub backend. Each
// method wraps exactly one endpoint: it builds the path and parameters,
// dispatches through the shared request pipeline, and returns the decoded
// payload. Headers, error classification, notifications, and session
// handling all live in the pipeline, never here.
package sparkhub

import (
	"net/url"
	"strconv"

	"github.com/sparkhub/sparkhub-cli/internal/adapter/outbound/rest"
)

// Client groups the endpoint wrappers around one shared pipeline.
type Client struct {
	p *rest.Pipeline
}

// NewClient wraps the given pipeline.
func NewClient(p *rest.Pipeline) *Client {
	return &Client{p: p}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func pageQuery(q url.Values, pageNum, pageSize int) url.Values {
	if q == nil {
		q = url.Values{}
	}
	if pageNum > 0 {
		q.Set("pageNum", strconv.Itoa(pageNum))
	}
	if pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(pageSize))
	}
	return q
}
