package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// InfluxDBConfig is everything needed to push scraped metrics to an
// InfluxDB instance, 1.7 or 2.0.
type InfluxDBConfig struct {
	// "1.7" or "2.0".
	Version string
	// Base write URL, e.g. http://localhost:9999/api/v2/write.
	PushAddr     string
	Organization string
	Bucket       string
	AuthToken    string
	// Instance tag attached to every measurement.
	Instance string
}

// InfluxDBExporter periodically pushes scraped livelog metrics to InfluxDB.
type InfluxDBExporter struct {
	targetAddress string
	tokenHeader   string
	instance      string
	scraper       *Scraper
	client        *http.Client
}

// NewInfluxDBExporter builds a push exporter from the config. Fails on an
// unparseable push address.
func NewInfluxDBExporter(config *InfluxDBConfig, scraper *Scraper) (*InfluxDBExporter, error) {
	target, err := pushTargetAddress(config)
	if err != nil {
		return nil, err
	}
	return &InfluxDBExporter{
		targetAddress: target,
		tokenHeader:   authHeaderValue(config),
		instance:      config.Instance,
		scraper:       scraper,
		client:        &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// Push scrapes the current metric values and writes them to InfluxDB in
// line protocol, one point per metric, all sharing one timestamp.
func (e *InfluxDBExporter) Push() error {
	metrics, err := e.scraper.CollectRaw()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(metrics))
	for k := range metrics {
		names = append(names, k)
	}
	sort.Strings(names)

	b := new(bytes.Buffer)
	ts := time.Now().UnixNano()
	for _, k := range names {
		fmt.Fprintf(b, "%s,instance=%s value=%f %d\n", k, e.instance, metrics[k], ts)
	}

	req, err := http.NewRequest(http.MethodPost, e.targetAddress, b)
	if err != nil {
		return err
	}
	req.Header.Add("Authorization", e.tokenHeader)
	resp, err := e.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var body string
		if rb, err := io.ReadAll(resp.Body); err != nil {
			body = err.Error()
		} else {
			body = strings.TrimSpace(string(rb))
		}
		return fmt.Errorf("HTTP %s: %s", resp.Status, body)
	}
	return nil
}

// pushTargetAddress forms the write URL. The query differs between
// versions: 2.0 takes ?org=...&bucket=..., 1.7 takes ?db=... only.
func pushTargetAddress(config *InfluxDBConfig) (string, error) {
	u, err := url.ParseRequestURI(config.PushAddr)
	if err != nil {
		return "", fmt.Errorf("invalid push address %q: %w", config.PushAddr, err)
	}
	q := u.Query()
	if config.Version == "1.7" {
		q.Add("db", config.Organization)
	} else {
		q.Add("org", config.Organization)
		q.Add("bucket", config.Bucket)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// authHeaderValue forms the Authorization header: "Token <t>" for 2.0,
// "Bearer <t>" for 1.7.
func authHeaderValue(config *InfluxDBConfig) string {
	if config.Version == "2.0" {
		return "Token " + config.AuthToken
	}
	return "Bearer " + config.AuthToken
}
