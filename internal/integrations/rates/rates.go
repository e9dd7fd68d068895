package rates

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/beevik/etree"
	"github.com/minhvt/finbook/internal/config"
	"github.com/sirupsen/logrus"
)

const cacheTTL = time.Hour

// Client fetches daily reference exchange rates from an XML feed
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger

	mu        sync.Mutex
	cached    map[string]float64
	fetchedAt time.Time
}

// NewClient initializes a new rates client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.RatesURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// fetch downloads the raw XML feed
func (c *Client) fetch() ([]byte, error) {
	resp, err := c.client.Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}
	return body, nil
}

// parseXML extracts currency/rate pairs from the daily reference feed
func (c *Client) parseXML(rawBody []byte) (map[string]float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %v", err)
	}

	cubes := doc.FindElements("//Cube/Cube/Cube")
	if len(cubes) == 0 {
		return nil, fmt.Errorf("no rate data found in XML")
	}

	rates := make(map[string]float64, len(cubes))
	for _, cube := range cubes {
		currency := cube.SelectAttrValue("currency", "")
		rateText := cube.SelectAttrValue("rate", "")
		if currency == "" || rateText == "" {
			continue
		}
		rate, err := strconv.ParseFloat(rateText, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rate for %s: %v", currency, err)
		}
		rates[currency] = rate
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("no parsable rates in XML")
	}
	return rates, nil
}

// GetRates returns currency to rate pairs, cached for an hour.
func (c *Client) GetRates() (map[string]float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && time.Since(c.fetchedAt) < cacheTTL {
		return c.cached, nil
	}

	body, err := c.fetch()
	if err != nil {
		return nil, err
	}
	rates, err := c.parseXML(body)
	if err != nil {
		return nil, err
	}

	c.cached = rates
	c.fetchedAt = time.Now()
	c.log.Infof("Retrieved %d exchange rates", len(rates))
	return rates, nil
}
