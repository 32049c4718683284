package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
)

type planRequest struct {
	DietaryRestrictions string `json:"dietaryRestrictions"`
	HealthGoals         string `json:"healthGoals"`
	Preferences         string `json:"preferences"`
	MealCount           int    `json:"mealCount"`
}

func defaultPlanRequest() planRequest {
	return planRequest{
		DietaryRestrictions: "vegetarian",
		HealthGoals:         "lose weight and keep energy up",
		Preferences:         "spicy food, lentils, no mushrooms",
		MealCount:           3,
	}
}

type TestClient struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewTestClient(baseURL, sessionID string) *TestClient {
	return &TestClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		sessionID: sessionID,
		client: &http.Client{
			// plan generation can take a while
			Timeout: 3 * time.Minute,
		},
	}
}

func (tc *TestClient) runAllTests() error {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Agent Card", tc.testAgentCard},
		{"Profile", tc.testProfile},
		{"Meal Plan", func() bool { return tc.testMealPlan(defaultPlanRequest()) }},
		{"Food Swap", func() bool { return tc.testFoodSwap("White rice") }},
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
		return fmt.Errorf("%d test(s) failed", failed)
	}
	return nil
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	status, body, err := tc.do(http.MethodGet, "/health", nil)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}
	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testAgentCard() bool {
	printTestHeader("Testing Agent Card Endpoint")

	status, body, err := tc.do(http.MethodGet, "/.well-known/agent.json", nil)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var agentCard map[string]any
	if err := json.Unmarshal(body, &agentCard); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	requiredFields := []string{"name", "description", "url", "version", "capabilities", "skills"}
	for _, field := range requiredFields {
		if _, ok := agentCard[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	printSuccess("Agent card is valid")
	printJSON(body)
	return true
}

func (tc *TestClient) testProfile() bool {
	printTestHeader("Testing Profile Save and Load")

	session, ok := tc.session()
	if !ok {
		return false
	}

	profile := map[string]string{
		"dietaryRestrictions": "vegetarian",
		"healthGoals":         "lose weight",
		"medicalConditions":   "none",
		"preferences":         "spicy food",
	}
	path := fmt.Sprintf("/api/sessions/%s/profile", session)

	status, body, err := tc.do(http.MethodPut, path, profile)
	if err != nil || status != http.StatusOK {
		printError(fmt.Sprintf("Save failed (status %d): %v %s", status, err, string(body)))
		return false
	}

	status, body, err = tc.do(http.MethodGet, path, nil)
	if err != nil || status != http.StatusOK {
		printError(fmt.Sprintf("Load failed (status %d): %v %s", status, err, string(body)))
		return false
	}

	printSuccess("Profile saved and loaded")
	printJSON(body)
	return true
}

func (tc *TestClient) testMealPlan(req planRequest) bool {
	printTestHeader("Testing Meal Plan Generation")

	session, ok := tc.session()
	if !ok {
		return false
	}
	fmt.Printf("%sRequest:%s %+v\n\n", colorYellow, colorReset, req)

	start := time.Now()
	status, body, err := tc.do(http.MethodPost, fmt.Sprintf("/api/sessions/%s/meal-plan", session), req)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var plan struct {
		MealCount int `json:"mealCount"`
		Days      []struct {
			DayTitle string            `json:"dayTitle"`
			Totals   map[string]any    `json:"totals"`
			Meals    []json.RawMessage `json:"meals"`
		} `json:"days"`
		Warnings []string `json:"warnings"`
	}
	if err := json.Unmarshal(body, &plan); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	printSuccess(fmt.Sprintf("Generated %d days with %d meals per day in %s",
		len(plan.Days), plan.MealCount, time.Since(start).Round(time.Millisecond)))
	for _, day := range plan.Days {
		fmt.Printf("  %s: %d meals, totals %v\n", day.DayTitle, len(day.Meals), day.Totals)
	}
	if len(plan.Warnings) > 0 {
		fmt.Printf("\n%sWarnings:%s\n", colorYellow, colorReset)
		for _, w := range plan.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}
	return true
}

func (tc *TestClient) testFoodSwap(foodItem string) bool {
	if !tc.testProfile() || !tc.testMealPlan(defaultPlanRequest()) {
		return false
	}

	printTestHeader("Testing Food Swap")

	session, _ := tc.session()
	status, body, err := tc.do(http.MethodPost, fmt.Sprintf("/api/sessions/%s/food-swap", session),
		map[string]string{"foodItem": foodItem})
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	printSuccess("Food swap suggested")
	printJSON(body)
	return true
}

func (tc *TestClient) testA2A(text string) bool {
	printTestHeader("Testing A2A Planner")

	session, ok := tc.session()
	if !ok {
		return false
	}

	request := map[string]any{
		"jsonrpc": "2.0",
		"id":      fmt.Sprintf("test-%d", time.Now().Unix()),
		"method":  "message/send",
		"params": map[string]any{
			"message": map[string]any{
				"kind":      "message",
				"role":      "user",
				"contextId": session,
				"parts": []map[string]any{
					{"kind": "text", "text": text},
				},
			},
			"configuration": map[string]any{
				"blocking":            true,
				"acceptedOutputModes": []string{"text", "data"},
			},
		},
	}

	status, body, err := tc.do(http.MethodPost, "/a2a/planner", request)
	if err != nil || status != http.StatusOK {
		printError(fmt.Sprintf("Request failed (status %d): %v", status, err))
		return false
	}

	var response struct {
		Error  any `json:"error"`
		Result struct {
			Status struct {
				State   string `json:"state"`
				Message struct {
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"message"`
			} `json:"status"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if response.Error != nil {
		printError(fmt.Sprintf("Request returned an error: %v", response.Error))
		return false
	}

	state := response.Result.Status.State
	if state != "completed" {
		printError(fmt.Sprintf("Expected state 'completed', got '%s'", state))
	} else {
		printSuccess("A2A task completed")
	}

	fmt.Println(strings.Repeat("=", 80))
	for _, part := range response.Result.Status.Message.Parts {
		fmt.Println(part.Text)
	}
	fmt.Println(strings.Repeat("=", 80))
	return state == "completed"
}

// session returns the configured session or creates one on first use.
func (tc *TestClient) session() (string, bool) {
	if tc.sessionID != "" {
		return tc.sessionID, true
	}

	status, body, err := tc.do(http.MethodPost, "/api/sessions", nil)
	if err != nil || status != http.StatusCreated {
		printError(fmt.Sprintf("Failed to create session (status %d): %v", status, err))
		return "", false
	}

	var resp struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || resp.SessionID == "" {
		printError("Invalid session response")
		return "", false
	}

	tc.sessionID = resp.SessionID
	fmt.Printf("%sSession:%s %s\n", colorPurple, colorReset, tc.sessionID)
	return tc.sessionID, true
}

func (tc *TestClient) do(method, path string, payload any) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(data)
	}

	url := tc.baseURL + path
	fmt.Printf("%s %s\n", method, url)

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
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
