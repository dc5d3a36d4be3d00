// Schoolscout - School Search and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/schoolscout

package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/schoolscout/internal/breaker"
	"github.com/tomtom215/schoolscout/internal/metrics"
)

// ErrUpstream wraps every failure talking to the dataset API.
var ErrUpstream = errors.New("dataset: upstream unavailable")

// Row is one upstream record with every cell stringified.
type Row map[string]string

// Fetcher retrieves every row of a dataset.
type Fetcher interface {
	FetchAll(ctx context.Context, datasetID string) ([]Row, error)
}

// ClientConfig configures the data.gov.sg v2 client.
type ClientConfig struct {
	BaseURL  string
	Timeout  time.Duration
	MaxPages int
}

// Client reads paginated datasets from the data.gov.sg v2 public API.
type Client struct {
	base     *url.URL
	client   *http.Client
	breaker  *breaker.Breaker[page]
	maxPages int
}

type page struct {
	rows []Row
	next string
}

type listRowsResponse struct {
	Code     int             `json:"code"`
	ErrorMsg string          `json:"errorMsg"`
	Data     json.RawMessage `json:"data"`
}

type listRowsData struct {
	Rows    []map[string]interface{} `json:"rows"`
	Items   []map[string]interface{} `json:"items"`
	Records []map[string]interface{} `json:"records"`
	Links   struct {
		Next string `json:"next"`
	} `json:"links"`
}

// NewClient creates a client. BaseURL is the datasets root, for example
// https://api-production.data.gov.sg/v2/public/api/datasets.
func NewClient(cfg ClientConfig) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid dataset base URL: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = 200
	}

	return &Client{
		base:     base,
		client:   &http.Client{Timeout: timeout},
		breaker:  breaker.New[page]("dataset-api", breaker.Settings{Timeout: time.Minute}),
		maxPages: maxPages,
	}, nil
}

// FetchAll follows data.links.next until it runs out or MaxPages is
// reached. Any page failure fails the whole fetch.
func (c *Client) FetchAll(ctx context.Context, datasetID string) ([]Row, error) {
	start := time.Now()
	rows, err := c.fetchAll(ctx, datasetID)
	metrics.RecordDatasetFetch(datasetID, len(rows), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) fetchAll(ctx context.Context, datasetID string) ([]Row, error) {
	if datasetID == "" {
		return nil, fmt.Errorf("%w: empty dataset id", ErrUpstream)
	}

	next := c.base.ResolveReference(&url.URL{Path: datasetID + "/list-rows"})
	var all []Row
	seen := make(map[string]bool)

	for i := 0; i < c.maxPages && next != nil; i++ {
		endpoint := next.String()
		if seen[endpoint] {
			break
		}
		seen[endpoint] = true

		p, err := c.breaker.Execute(func() (page, error) {
			return c.fetchPage(ctx, endpoint)
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrUpstream, datasetID, err)
		}
		all = append(all, p.rows...)

		current := next
		next = nil
		if p.next != "" {
			ref, err := url.Parse(p.next)
			if err != nil {
				return nil, fmt.Errorf("%w: bad next link %q: %v", ErrUpstream, p.next, err)
			}
			next = current.ResolveReference(ref)
		}
	}

	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, endpoint string) (page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return page{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return page{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return page{}, fmt.Errorf("status %d", resp.StatusCode)
	}

	var envelope listRowsResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return page{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if envelope.Code != 0 && envelope.ErrorMsg != "" {
		return page{}, fmt.Errorf("api error %d: %s", envelope.Code, envelope.ErrorMsg)
	}

	return parseData(envelope.Data)
}

// parseData accepts data.rows, data.items, data.records or a bare array.
func parseData(raw json.RawMessage) (page, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return page{}, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	if raw[0] == '[' {
		var cells []map[string]interface{}
		if err := decoder.Decode(&cells); err != nil {
			return page{}, fmt.Errorf("failed to decode rows: %w", err)
		}
		return page{rows: toRows(cells)}, nil
	}

	var data listRowsData
	if err := decoder.Decode(&data); err != nil {
		return page{}, fmt.Errorf("failed to decode data: %w", err)
	}

	cells := data.Rows
	if cells == nil {
		cells = data.Items
	}
	if cells == nil {
		cells = data.Records
	}
	return page{rows: toRows(cells), next: data.Links.Next}, nil
}

func toRows(cells []map[string]interface{}) []Row {
	rows := make([]Row, 0, len(cells))
	for _, m := range cells {
		row := make(Row, len(m))
		for k, v := range m {
			row[k] = stringify(v)
		}
		rows = append(rows, row)
	}
	return rows
}

// stringify renders a decoded cell. Numbers lose a trailing ".0" and null
// becomes "".
func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return strconv.FormatInt(i, 10)
		}
		if f, err := val.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
