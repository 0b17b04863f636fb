package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
)

// step is one request replayed against both deployments, in file order.
type step struct {
	Method       string          `json:"method"`
	Path         string          `json:"path"`
	Body         json.RawMessage `json:"body,omitempty"`
	Critical     bool            `json:"critical"`
	IgnoreFields []string        `json:"ignore_fields,omitempty"`
}

type scenario struct {
	Steps []step `json:"steps"`
}

type outcome struct {
	Step           step
	LegacyStatus   int
	GoStatus       int
	StatusMatch    bool
	BodyMatch      bool
	Err            error
	DurationGo     time.Duration
	DurationLegacy time.Duration
}

func (o outcome) diverged() bool {
	return o.Err != nil || !o.StatusMatch || !o.BodyMatch
}

func main() {
	var (
		goBase       string
		legacyBase   string
		scenarioPath string
		timeout      time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:8080", "enrollment API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:5000", "legacy API base URL")
	flag.StringVar(&scenarioPath, "scenario", filepath.Join("scripts", "shadow_compare", "scenario.json"), "path to the JSON scenario")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	steps, err := loadScenario(scenarioPath)
	if err != nil {
		log.Fatalf("failed to load scenario: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	outcomes := make([]outcome, 0, len(steps))
	var breaking, optional int
	for _, s := range steps {
		o := replay(client, goBase, legacyBase, s)
		if o.diverged() {
			if s.Critical {
				breaking++
			} else {
				optional++
			}
		}
		outcomes = append(outcomes, o)
	}

	printReport(os.Stdout, outcomes)
	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optional)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadScenario(path string) ([]step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("no steps defined in %s", path)
	}
	return sc.Steps, nil
}

func replay(client *http.Client, goBase, legacyBase string, s step) outcome {
	o := outcome{Step: s}

	goStatus, goBody, goDur, err := send(client, goBase, s)
	if err != nil {
		o.Err = fmt.Errorf("go request: %w", err)
		return o
	}
	legacyStatus, legacyBody, legacyDur, err := send(client, legacyBase, s)
	if err != nil {
		o.Err = fmt.Errorf("legacy request: %w", err)
		return o
	}

	o.GoStatus, o.LegacyStatus = goStatus, legacyStatus
	o.DurationGo, o.DurationLegacy = goDur, legacyDur
	o.StatusMatch = goStatus == legacyStatus
	o.BodyMatch = bodiesEqual(goBody, legacyBody, s.IgnoreFields)
	return o
}

func send(client *http.Client, base string, s step) (int, []byte, time.Duration, error) {
	if client == nil {
		return 0, nil, 0, errors.New("nil client")
	}
	method := strings.ToUpper(strings.TrimSpace(s.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := s.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var body io.Reader
	if len(s.Body) > 0 {
		body = bytes.NewReader(s.Body)
	}
	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, body)
	if err != nil {
		return 0, nil, 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, payload, time.Since(start), nil
}

// bodiesEqual compares two payloads as JSON when both decode, dropping the
// ignored top level fields first. Non-JSON bodies must match byte for byte
// after trimming.
func bodiesEqual(a, b []byte, ignore []string) bool {
	a, b = bytes.TrimSpace(a), bytes.TrimSpace(b)
	if len(ignore) == 0 && bytes.Equal(a, b) {
		return true
	}

	var aj, bj interface{}
	if json.Unmarshal(a, &aj) != nil || json.Unmarshal(b, &bj) != nil {
		return bytes.Equal(a, b)
	}
	return reflect.DeepEqual(normalize(aj, ignore), normalize(bj, ignore))
}

func normalize(v interface{}, ignore []string) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, inner := range val {
			if contains(ignore, k) {
				continue
			}
			out[k] = normalize(inner, ignore)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, inner := range val {
			out[i] = normalize(inner, ignore)
		}
		return out
	case float64:
		if val == float64(int64(val)) {
			return int64(val)
		}
		return val
	default:
		return val
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func printReport(w io.Writer, results []outcome) {
	fmt.Fprintln(w, "Shadow Compare Report")
	fmt.Fprintln(w, "=====================")
	for _, res := range results {
		status := "OK"
		switch {
		case res.Err != nil:
			status = "ERROR"
		case res.diverged():
			status = "DIFF"
		}
		fmt.Fprintf(w, "[%s] %s %s\n", status, res.Step.Method, res.Step.Path)
		if res.Err != nil {
			fmt.Fprintf(w, "  Error: %v\n", res.Err)
			continue
		}
		fmt.Fprintf(w, "  Go: %d (%s) | Legacy: %d (%s)\n", res.GoStatus, res.DurationGo, res.LegacyStatus, res.DurationLegacy)
		fmt.Fprintf(w, "  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Step.Critical)
	}
}
