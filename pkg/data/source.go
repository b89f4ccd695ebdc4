package data

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	arrowcsv "github.com/apache/arrow-go/v18/arrow/csv"
	"golang.org/x/time/rate"
)

// Fetched is a dataset as delivered by a Source, split by variable role.
type Fetched struct {
	ID       int
	Name     string
	Features *Table
	Targets  *Table
}

// Release frees both halves.
func (f *Fetched) Release() {
	f.Features.Release()
	f.Targets.Release()
}

// Source fetches a dataset by its repository identifier.
type Source interface {
	Fetch(ctx context.Context, id int) (*Fetched, error)
}

// UCIConfig configures the UCI ML Repository client.
type UCIConfig struct {
	// BaseURL of the repository API (default: https://archive.ics.uci.edu).
	BaseURL string

	// Timeout for each request (default: 30s).
	Timeout time.Duration

	// RateLimit requests per second (default: 2).
	RateLimit float64

	// RateBurst maximum burst size (default: 1).
	RateBurst int

	// Transport allows injecting a custom HTTP transport.
	Transport http.RoundTripper
}

// DefaultUCIConfig returns the settings used against the public repository.
func DefaultUCIConfig() UCIConfig {
	return UCIConfig{
		BaseURL:   "https://archive.ics.uci.edu",
		Timeout:   30 * time.Second,
		RateLimit: 2,
		RateBurst: 1,
	}
}

// UCIClient reads datasets from the UCI ML Repository. Each Fetch issues a
// metadata request followed by a download of the data file. Failed requests
// are not retried.
type UCIClient struct {
	config      UCIConfig
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

// NewUCIClient creates a client, filling zero fields from DefaultUCIConfig.
func NewUCIClient(config UCIConfig) *UCIClient {
	def := DefaultUCIConfig()
	if config.BaseURL == "" {
		config.BaseURL = def.BaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = def.Timeout
	}
	if config.RateLimit == 0 {
		config.RateLimit = def.RateLimit
	}
	if config.RateBurst == 0 {
		config.RateBurst = def.RateBurst
	}
	return &UCIClient{
		config: config,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: config.Transport,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(config.RateLimit), config.RateBurst),
	}
}

type uciResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    uciMetadata `json:"data"`
}

type uciMetadata struct {
	ID        int           `json:"uci_id"`
	Name      string        `json:"name"`
	DataURL   string        `json:"data_url"`
	Variables []uciVariable `json:"variables"`
}

type uciVariable struct {
	Name string `json:"name"`
	Role string `json:"role"`
	Type string `json:"type"`
}

// Fetch downloads dataset id and splits it into feature and target tables.
func (c *UCIClient) Fetch(ctx context.Context, id int) (*Fetched, error) {
	meta, err := c.metadata(ctx, id)
	if err != nil {
		return nil, err
	}
	if meta.DataURL == "" {
		return nil, fmt.Errorf("%w: dataset %d (%s)", ErrNoData, id, meta.Name)
	}

	body, err := c.get(ctx, meta.DataURL)
	if err != nil {
		return nil, fmt.Errorf("download data: %w", err)
	}
	all, err := ReadCSV(body)
	if err != nil {
		return nil, err
	}
	defer all.Release()

	var features, targets []string
	for _, v := range meta.Variables {
		if !all.HasColumn(v.Name) {
			return nil, fmt.Errorf("%w: variable %q missing from data file", ErrSchemaMismatch, v.Name)
		}
		switch Role(v.Role) {
		case RoleFeature:
			features = append(features, v.Name)
		case RoleTarget:
			targets = append(targets, v.Name)
		}
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: dataset %d declares no target", ErrSchemaMismatch, id)
	}

	ft, err := all.Select(features...)
	if err != nil {
		return nil, err
	}
	tt, err := all.Select(targets...)
	if err != nil {
		ft.Release()
		return nil, err
	}
	return &Fetched{ID: meta.ID, Name: meta.Name, Features: ft, Targets: tt}, nil
}

func (c *UCIClient) metadata(ctx context.Context, id int) (*uciMetadata, error) {
	u := strings.TrimSuffix(c.config.BaseURL, "/") + "/api/dataset?" + url.Values{"id": {strconv.Itoa(id)}}.Encode()
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetch metadata: %w", err)
	}
	var resp uciResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	if resp.Status != http.StatusOK {
		return nil, fmt.Errorf("fetch metadata: dataset %d: status %d: %s", id, resp.Status, resp.Message)
	}
	return &resp.Data, nil
}

// get performs one rate-limited GET and returns the body of a 2xx response.
func (c *UCIClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

// ReadCSV decodes CSV with a header row into a table of string columns.
// Values listed in MissingTokens become nulls.
func ReadCSV(body []byte) (*Table, error) {
	header, err := csv.NewReader(bytes.NewReader(body)).Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty data file", ErrNoData)
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	fields := make([]arrow.Field, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrColumnExists, name)
		}
		seen[name] = struct{}{}
		fields[i] = arrow.Field{Name: name, Type: arrow.BinaryTypes.String, Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	r := arrowcsv.NewReader(bytes.NewReader(body), schema,
		arrowcsv.WithAllocator(pool),
		arrowcsv.WithHeader(true),
		arrowcsv.WithChunk(-1),
		arrowcsv.WithNullReader(true, MissingTokens...),
	)
	defer r.Release()

	var recs []arrow.Record
	for r.Next() {
		rec := r.Record()
		rec.Retain()
		recs = append(recs, rec)
	}
	if err := r.Err(); err != nil {
		for _, rec := range recs {
			rec.Release()
		}
		return nil, fmt.Errorf("read csv: %w", err)
	}

	tbl := array.NewTableFromRecords(schema, recs)
	for _, rec := range recs {
		rec.Release()
	}
	return NewTable(tbl), nil
}
