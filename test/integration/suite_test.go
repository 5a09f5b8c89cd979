//go:build integration

package integration

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/tidwall/gjson"
)

// testContext holds state shared across step definitions within a scenario.
type testContext struct {
	t            *testing.T
	baseURL      string
	client       *http.Client
	headers      http.Header
	response     *http.Response
	responseBody []byte
	err          error
}

// newTestContext creates a new test context. BASE_URL points the suite at a
// deployed service; otherwise each scenario starts its own.
func newTestContext(t *testing.T) *testContext {
	return &testContext{
		t:       t,
		baseURL: os.Getenv("BASE_URL"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		headers: http.Header{},
	}
}

// reset clears response state between scenarios.
func (tc *testContext) reset() {
	if tc.response != nil && tc.response.Body != nil {
		_ = tc.response.Body.Close()
	}

	tc.response = nil
	tc.responseBody = nil
	tc.err = nil
	tc.headers = http.Header{}
}

// initializeScenario registers step definitions for each scenario.
func initializeScenario(t *testing.T) func(*godog.ScenarioContext) {
	external := os.Getenv("BASE_URL") != ""

	return func(ctx *godog.ScenarioContext) {
		tc := newTestContext(t)

		ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
			tc.reset()
			return ctx, nil
		})

		ctx.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
			tc.reset()
			return ctx, nil
		})

		ctx.Step(`^the service is running$`, func() error {
			return tc.startService(external, nil)
		})
		ctx.Step(`^the service is running with default zone "([^"]*)"$`, func(zone string) error {
			return tc.startService(external, func(cfgZone *string, _ *bool) { *cfgZone = zone })
		})
		ctx.Step(`^the service is running with auth enabled$`, func() error {
			return tc.startService(external, func(_ *string, auth *bool) { *auth = true })
		})
		ctx.Step(`^I send header "([^"]*)" with value "([^"]*)"$`, tc.iSendHeader)
		ctx.Step(`^I request GET "([^"]*)"$`, tc.iRequestGET)
		ctx.Step(`^I POST to "([^"]*)" with body:$`, tc.iPOSTWithBody)
		ctx.Step(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
		ctx.Step(`^the response should contain "([^"]*)"$`, tc.theResponseShouldContain)
		ctx.Step(`^the JSON field "([^"]*)" should be "([^"]*)"$`, tc.theJSONFieldShouldBe)
		ctx.Step(`^the JSON field "([^"]*)" should be (\d+)$`, tc.theJSONFieldShouldBeNumber)
	}
}

// startService points the scenario at a service and verifies it is live.
func (tc *testContext) startService(external bool, tweak func(zone *string, auth *bool)) error {
	if !external {
		cfg := defaultConfig(tc.t)
		if tweak != nil {
			tweak(&cfg.Quarter.DefaultZone, &cfg.Auth.Enabled)
		}

		tc.baseURL = newStack(tc.t, cfg).server.URL
	} else if tweak != nil {
		return godog.ErrPending
	}

	return tc.theServiceIsLive()
}

// theServiceIsLive verifies the service is reachable.
func (tc *testContext) theServiceIsLive() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tc.baseURL+"/-/live", http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("service is not running at %s: %w", tc.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status %d", resp.StatusCode)
	}

	return nil
}

func (tc *testContext) iSendHeader(name, value string) error {
	tc.headers.Set(name, value)
	return nil
}

// iRequestGET makes a GET request to the specified path.
func (tc *testContext) iRequestGET(path string) error {
	return tc.do(http.MethodGet, path, nil)
}

// iPOSTWithBody posts a JSON document to the specified path.
func (tc *testContext) iPOSTWithBody(path string, body *godog.DocString) error {
	return tc.do(http.MethodPost, path, strings.NewReader(body.Content))
}

func (tc *testContext) do(method, path string, body io.Reader) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if body == nil {
		body = http.NoBody
	}

	req, err := http.NewRequestWithContext(ctx, method, tc.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header = tc.headers.Clone()
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	tc.response, tc.err = tc.client.Do(req)
	if tc.err != nil {
		return fmt.Errorf("request failed: %w", tc.err)
	}

	tc.responseBody, tc.err = io.ReadAll(tc.response.Body)
	if tc.err != nil {
		return fmt.Errorf("failed to read response body: %w", tc.err)
	}

	return nil
}

// theResponseStatusShouldBe asserts the response status code.
func (tc *testContext) theResponseStatusShouldBe(expectedCode int) error {
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}

	if tc.response.StatusCode != expectedCode {
		return fmt.Errorf("expected status %d, got %d. Body: %s",
			expectedCode, tc.response.StatusCode, string(tc.responseBody))
	}

	return nil
}

// theResponseShouldContain asserts the response body contains the given text.
func (tc *testContext) theResponseShouldContain(text string) error {
	if tc.responseBody == nil {
		return fmt.Errorf("no response body")
	}

	if !bytes.Contains(tc.responseBody, []byte(text)) {
		return fmt.Errorf("response body does not contain %q.\nBody: %s", text, tc.responseBody)
	}

	return nil
}

// theJSONFieldShouldBe compares a gjson path in the response body.
func (tc *testContext) theJSONFieldShouldBe(path, expected string) error {
	field := gjson.GetBytes(tc.responseBody, path)
	if !field.Exists() {
		return fmt.Errorf("field %q missing.\nBody: %s", path, tc.responseBody)
	}

	if field.String() != expected {
		return fmt.Errorf("field %q is %q, expected %q", path, field.String(), expected)
	}

	return nil
}

func (tc *testContext) theJSONFieldShouldBeNumber(path string, expected int) error {
	field := gjson.GetBytes(tc.responseBody, path)
	if field.Type != gjson.Number || field.Int() != int64(expected) {
		return fmt.Errorf("field %q is %s, expected %d", path, field.Raw, expected)
	}

	return nil
}

// TestFeatures runs the GoDog BDD test suite.
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeScenario(t),
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
