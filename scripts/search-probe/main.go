package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rentall-dev/fleet-admin-api/pkg/response"
)

// search-probe walks the paged list endpoints of a running instance and
// verifies that the X-Pagination header agrees with what the pages actually
// return: every advertised page is reachable, the item counts add up, and
// the last page is really the last.

type target struct {
	Path     string `json:"path"`
	Query    string `json:"query"`
	PageSize int    `json:"pageSize"`
}

type config struct {
	Targets []target `json:"targets"`
}

type probeResult struct {
	Target     target
	Meta       response.PageMeta
	PagesSeen  int
	ItemsSeen  int
	Duration   time.Duration
	Error      error
	CountDrift bool
}

func main() {
	var (
		base        string
		token       string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080/api/v1", "API base URL")
	flag.StringVar(&token, "token", "", "Bearer token for authenticated endpoints")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "search-probe", "targets.json"), "Path to JSON targets file")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var results []probeResult
	failures := 0

	for _, t := range targets {
		res := probeTarget(client, base, token, t)
		if res.Error != nil || res.CountDrift {
			failures++
		}
		results = append(results, res)
	}

	printReport(results)

	fmt.Printf("Targets probed: %d, failures: %d\n", len(results), failures)
	if failures > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return cfg.Targets, nil
}

func probeTarget(client *http.Client, base, token string, tgt target) probeResult {
	res := probeResult{Target: tgt}
	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	page := 1
	for {
		meta, items, err := fetchPage(client, base, token, tgt, page)
		if err != nil {
			res.Error = fmt.Errorf("page %d: %w", page, err)
			return res
		}
		if page == 1 {
			res.Meta = meta
		}
		res.PagesSeen++
		res.ItemsSeen += items

		if meta.TotalPages == 0 || page >= meta.TotalPages {
			break
		}
		page++
	}

	res.CountDrift = res.Meta.TotalCount != res.ItemsSeen
	return res
}

func fetchPage(client *http.Client, base, token string, tgt target, page int) (response.PageMeta, int, error) {
	q := url.Values{}
	if tgt.Query != "" {
		parsed, err := url.ParseQuery(tgt.Query)
		if err != nil {
			return response.PageMeta{}, 0, fmt.Errorf("bad query: %w", err)
		}
		q = parsed
	}
	q.Set("page", strconv.Itoa(page))
	if tgt.PageSize > 0 {
		q.Set("size", strconv.Itoa(tgt.PageSize))
	}

	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	reqURL := strings.TrimRight(base, "/") + path + "?" + q.Encode()

	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return response.PageMeta{}, 0, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return response.PageMeta{}, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return response.PageMeta{}, 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	meta := response.ParsePaginationHeader(resp.Header, nil)

	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return response.PageMeta{}, 0, fmt.Errorf("decode body: %w", err)
	}

	return meta, len(envelope.Data), nil
}

func printReport(results []probeResult) {
	fmt.Println("Search Probe Report")
	fmt.Println("===================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if res.CountDrift {
			status = "DRIFT"
		}
		fmt.Printf("[%s] GET %s?%s\n", status, res.Target.Path, res.Target.Query)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
			continue
		}
		fmt.Printf("  Advertised: %d items over %d pages | Seen: %d items over %d pages (%s)\n",
			res.Meta.TotalCount, res.Meta.TotalPages, res.ItemsSeen, res.PagesSeen, res.Duration)
	}
}
