package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// Small operator CLI: hits the running server's health endpoint and prints a
// colored verdict. Exit code 1 when the service is degraded or unreachable.
func main() {
	_ = godotenv.Load()

	baseURL := os.Getenv("APP_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(baseURL + "/api/health")
	if err != nil {
		color.Red("UNREACHABLE  %s (%v)", baseURL, err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	var body struct {
		Data struct {
			Status    string `json:"status"`
			Database  string `json:"database"`
			Providers int    `json:"providers_available"`
			Engines   int    `json:"engines_available"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		color.Red("BAD RESPONSE  %v", err)
		os.Exit(1)
	}

	d := body.Data

	statusColor := color.New(color.FgGreen, color.Bold)
	if d.Status != "ok" {
		statusColor = color.New(color.FgRed, color.Bold)
	}
	statusColor.Printf("STATUS      %s\n", d.Status)

	if d.Database == "ok" {
		color.Green("DATABASE    ok")
	} else {
		color.Red("DATABASE    %s", d.Database)
	}

	providerLine := fmt.Sprintf("AI          %d provider(s) available", d.Providers)
	if d.Providers > 0 {
		color.Green(providerLine)
	} else {
		color.Red(providerLine)
	}

	engineLine := fmt.Sprintf("SEARCH      %d engine(s) available", d.Engines)
	if d.Engines > 0 {
		color.Green(engineLine)
	} else {
		color.Yellow(engineLine)
	}

	if d.Status != "ok" {
		os.Exit(1)
	}
}
