// Command test runs smoke tests against a running nutrigenius server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		baseURL   string
		sessionID string
	)

	client := func() *TestClient {
		printHeader("NutriGenius Agent - Test Suite")
		fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, baseURL, colorReset)
		return NewTestClient(baseURL, sessionID)
	}

	cmd := &cobra.Command{
		Use:          "nutrigenius-test",
		Short:        "Smoke tests for a running NutriGenius server",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the agent")
	cmd.PersistentFlags().StringVar(&sessionID, "session", "", "Session ID to reuse (a new one is created when empty)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "all",
			Short: "Run every test",
			RunE: func(cmd *cobra.Command, args []string) error {
				return client().runAllTests()
			},
		},
		checkCommand("health", "Check /health", func(tc *TestClient) bool { return tc.testHealthCheck() }, client),
		checkCommand("agent-card", "Validate the agent card", func(tc *TestClient) bool { return tc.testAgentCard() }, client),
		checkCommand("profile", "Save and read back a profile", func(tc *TestClient) bool { return tc.testProfile() }, client),
		planCommand(client),
		swapCommand(client),
		a2aCommand(client),
	)

	return cmd
}

func checkCommand(use, short string, fn func(*TestClient) bool, client func() *TestClient) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !fn(client()) {
				return fmt.Errorf("%s test failed", use)
			}
			return nil
		},
	}
}

func planCommand(client func() *TestClient) *cobra.Command {
	req := defaultPlanRequest()

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a meal plan through the REST API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !client().testMealPlan(req) {
				return fmt.Errorf("plan test failed")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&req.DietaryRestrictions, "dietary", req.DietaryRestrictions, "Dietary restrictions")
	cmd.Flags().StringVar(&req.HealthGoals, "goals", req.HealthGoals, "Health goals")
	cmd.Flags().StringVar(&req.Preferences, "preferences", req.Preferences, "Food preferences")
	cmd.Flags().IntVar(&req.MealCount, "meals", req.MealCount, "Meals per day (1-4)")
	return cmd
}

func swapCommand(client func() *TestClient) *cobra.Command {
	var foodItem string

	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Generate a plan, then ask for a food swap",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !client().testFoodSwap(foodItem) {
				return fmt.Errorf("swap test failed")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&foodItem, "food", "White rice", "Food item to swap")
	return cmd
}

func a2aCommand(client func() *TestClient) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "a2a",
		Short: "Send a message to the A2A endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !client().testA2A(text) {
				return fmt.Errorf("a2a test failed")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "dietary: vegetarian; goals: more energy; preferences: Mediterranean food; meals: 3", "Message text")
	return cmd
}
