package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

const (
	minChance = 5
	maxChance = 70
)

var sampleProfile = map[string]interface{}{
	"gender":   "Female",
	"citizen":  true,
	"usSchool": true,
	"gpa":      3.8,
	"gpa9":     3.6,
	"gpa10":    3.8,
	"gpa11":    3.95,
	"sat":      1450,
	"apScores": []map[string]interface{}{
		{"subject": "Calculus BC", "score": 5},
		{"subject": "US History", "score": 4},
	},
	"ecs":    []string{"Debate team captain", "Robotics club", "Hospital volunteer"},
	"awards": []string{"State debate finalist"},
}

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string, timeout time.Duration) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:3000", "Base URL of the prediction service")
	testType := flag.String("test", "all", "Test type: all, health, missing-input, predictions, custom")
	profileFile := flag.String("profile", "", "Path to a JSON student profile (for custom test)")
	colleges := flag.String("colleges", "Tufts,Boston University,Northeastern", "Comma-separated college list")
	timeout := flag.Duration("timeout", 2*time.Minute, "HTTP client timeout")
	flag.Parse()

	client := NewTestClient(*baseURL, *timeout)

	printHeader("Admissions Predictor - Test Suite")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, *baseURL, colorReset)

	collegeList := splitColleges(*colleges)

	var ok bool
	switch *testType {
	case "all":
		client.runAllTests(collegeList)
		return
	case "health":
		ok = client.testHealthCheck()
	case "missing-input":
		ok = client.testMissingInput()
	case "predictions":
		ok = client.testPredictions(sampleProfile, collegeList)
	case "custom":
		if *profileFile == "" {
			printError("Profile file is required for custom test. Use -profile flag")
			os.Exit(1)
		}
		profile, err := readProfile(*profileFile)
		if err != nil {
			printError(err.Error())
			os.Exit(1)
		}
		ok = client.testPredictions(profile, collegeList)
	default:
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Println("\nAvailable tests: all, health, missing-input, predictions, custom")
		os.Exit(1)
	}

	if !ok {
		os.Exit(1)
	}
}

func (tc *TestClient) runAllTests(colleges []string) {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Missing Input", tc.testMissingInput},
		{"Predictions", func() bool { return tc.testPredictions(sampleProfile, colleges) }},
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	url := fmt.Sprintf("%s/health", tc.baseURL)
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		return false
	}

	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testMissingInput() bool {
	printTestHeader("Testing Missing Input Rejection")

	status, body, err := tc.postPredictions(map[string]interface{}{
		"colleges": []string{"Tufts"},
	})
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}

	if status != http.StatusBadRequest {
		printError(fmt.Sprintf("Expected status 400, got %d", status))
		return false
	}

	printSuccess(fmt.Sprintf("Rejected with 400: %s", string(body)))
	return true
}

func (tc *TestClient) testPredictions(profile map[string]interface{}, colleges []string) bool {
	printTestHeader("Testing Prediction Generation")

	request := map[string]interface{}{
		"profile":  profile,
		"colleges": colleges,
	}

	jsonData, _ := json.MarshalIndent(request, "", "  ")
	fmt.Printf("%sRequest:%s\n", colorYellow, colorReset)
	fmt.Println(string(jsonData))
	fmt.Println()

	status, body, err := tc.postPredictions(request)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}

	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var response struct {
		Predictions []struct {
			CollegeName            string          `json:"college_name"`
			AdmissionChancePercent int             `json:"admission_chance_percent"`
			Reasoning              json.RawMessage `json:"reasoning"`
		} `json:"predictions"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	if len(response.Predictions) != len(colleges) {
		printError(fmt.Sprintf("Expected %d predictions, got %d", len(colleges), len(response.Predictions)))
		return false
	}

	for _, p := range response.Predictions {
		if p.AdmissionChancePercent < minChance || p.AdmissionChancePercent > maxChance {
			printError(fmt.Sprintf("%s: chance %d outside [%d,%d]", p.CollegeName, p.AdmissionChancePercent, minChance, maxChance))
			return false
		}
	}

	printSuccess("Predictions generated successfully")
	printJSON(body)
	return true
}

func (tc *TestClient) postPredictions(request map[string]interface{}) (int, []byte, error) {
	url := fmt.Sprintf("%s/get-predictions", tc.baseURL)
	fmt.Printf("POST %s\n", url)

	jsonData, err := json.Marshal(request)
	if err != nil {
		return 0, nil, err
	}

	resp, err := tc.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func readProfile(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	var profile map[string]interface{}
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	return profile, nil
}

func splitColleges(s string) []string {
	var out []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printTestHeader(text string) {
	fmt.Printf("%s[TEST] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}

func printJSON(data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err == nil {
		fmt.Printf("\n%sResponse:%s\n%s\n", colorYellow, colorReset, prettyJSON.String())
	}
}
