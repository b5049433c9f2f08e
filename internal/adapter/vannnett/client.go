package vannnett

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fjordlab/vannrapport/internal/domain"
	"github.com/fjordlab/vannrapport/internal/observability"
)

// DefaultBaseURL is the production vann-nett service root.
const DefaultBaseURL = "https://vann-nett.no/service"

// elementTokens maps the case-insensitive quality-element selector to the
// token the upstream service expects in the URL path.
var elementTokens = map[string]string{
	"ecological": "ecological",
	"rbsp":       "RBSP",
	"swchemical": "swChemical",
}

// Client fetches water-quality classifications from the vann-nett registry.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a vann-nett client. An empty baseURL selects the
// production service.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
		metrics: metrics,
	}
}

// FetchQuality retrieves the quality classification table for one water body.
// qualityElement must be one of "ecological", "rbsp" or "swchemical"
// (case-insensitive); anything else fails with domain.ErrInvalidArgument
// before any request is made. A non-200 response fails with
// *domain.UpstreamError. A successful response containing no parameter data
// anywhere returns (nil, nil).
func (c *Client) FetchQuality(ctx context.Context, waterbodyID, qualityElement string) (*domain.QualityTable, error) {
	token, ok := elementTokens[strings.ToLower(qualityElement)]
	if !ok {
		return nil, fmt.Errorf("%w: quality element %q must be one of ecological, rbsp, swchemical",
			domain.ErrInvalidArgument, qualityElement)
	}

	u := fmt.Sprintf("%s/waterbodies/%s/qualityElements/%s", c.baseURL, url.PathEscape(waterbodyID), token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.QualityFetches.WithLabelValues(token, "error").Inc()
		return nil, fmt.Errorf("fetch quality elements: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.QualityFetchSeconds.Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		c.metrics.QualityFetches.WithLabelValues(token, "error").Inc()
		return nil, &domain.UpstreamError{Status: resp.StatusCode, URL: u}
	}

	var categories []category
	if err := json.NewDecoder(resp.Body).Decode(&categories); err != nil {
		c.metrics.QualityFetches.WithLabelValues(token, "error").Inc()
		return nil, fmt.Errorf("decode response: %w", err)
	}

	table := flatten(waterbodyID, categories)
	if table == nil {
		c.metrics.QualityFetches.WithLabelValues(token, "no_data").Inc()
		c.logger.Debug("no quality data for water body",
			"waterbody_id", waterbodyID,
			"element", token,
		)
		return nil, nil
	}

	table.FetchedAt = domain.Now()
	c.metrics.QualityFetches.WithLabelValues(token, "success").Inc()
	c.logger.Debug("fetched quality data",
		"waterbody_id", waterbodyID,
		"element", token,
		"records", len(table.Records),
	)
	return table, nil
}

// flatten walks category → quality element → parameter and emits one record
// per leaf parameter object, in encounter order. Returns nil when no
// parameter objects exist anywhere.
func flatten(waterbodyID string, categories []category) *domain.QualityTable {
	var records []domain.QualityRecord
	for _, cat := range categories {
		for _, ele := range cat.QualityElements {
			for _, par := range ele.Parameters {
				records = append(records, par.record())
			}
		}
	}
	if records == nil {
		return nil
	}
	return &domain.QualityTable{WaterbodyID: waterbodyID, Records: records}
}

// Vann-nett API response types.

type category struct {
	QualityElements []qualityElement `json:"qualityElements"`
}

type qualityElement struct {
	Parameters []parameter `json:"parameters"`
}

type parameter struct {
	QualityElementType *typeRef   `json:"qualityElementType"`
	ParameterType      *textField `json:"parameterType"`
	Status             *textField `json:"status"`
	EQR                *float64   `json:"eqr"`
	NEQR               *float64   `json:"neqr"`
	Value              *float64   `json:"value"`
	Threshold          *threshold `json:"threshold"`
	YearFrom           *int       `json:"yearFrom"`
	YearTo             *int       `json:"yearTo"`
	SampleCount        *int       `json:"sampleCount"`
	OtherSource        *string    `json:"otherSource"`
	DataQuality        *textField `json:"dataQuality"`
}

type typeRef struct {
	ParentID *string `json:"parentId"`
	ID       *string `json:"id"`
}

type textField struct {
	Text *string `json:"text"`
}

type threshold struct {
	RefValue     *float64 `json:"refValue"`
	Unit         *string  `json:"unit"`
	StatusLimits *string  `json:"statusLimits"`
}

// record maps one parameter object onto the flat QualityRecord field names.
func (p parameter) record() domain.QualityRecord {
	rec := domain.QualityRecord{
		EQR:         p.EQR,
		NEQR:        p.NEQR,
		Value:       p.Value,
		YearFrom:    p.YearFrom,
		YearTo:      p.YearTo,
		SampleCount: p.SampleCount,
		Source:      p.OtherSource,
	}
	if p.QualityElementType != nil {
		rec.Category = p.QualityElementType.ParentID
		rec.Element = p.QualityElementType.ID
	}
	if p.ParameterType != nil {
		rec.Parameter = p.ParameterType.Text
	}
	if p.Status != nil {
		rec.Status = p.Status.Text
	}
	if p.Threshold != nil {
		rec.ReferenceValue = p.Threshold.RefValue
		rec.Unit = p.Threshold.Unit
		rec.StatusLimits = p.Threshold.StatusLimits
	}
	if p.DataQuality != nil {
		rec.DataQuality = p.DataQuality.Text
	}
	return rec
}
