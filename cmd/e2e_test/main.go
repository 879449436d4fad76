package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

func baseURL() string {
	if u := os.Getenv("BASE_URL"); u != "" {
		return u
	}
	return "http://localhost:4000"
}

func main() {
	// Wait for server to start
	time.Sleep(2 * time.Second)

	// 1. Health Check
	checkEndpoint("/health", 200)

	// 2. Read-only analytics
	var holdings []map[string]any
	decodeEndpoint("/api/portfolio/holdings", &holdings)
	fmt.Printf("Holdings: %d\n", len(holdings))

	checkEndpoint("/api/portfolio/allocation", 200)
	checkEndpoint("/api/portfolio/performance", 200)
	checkEndpoint("/api/portfolio/summary", 200)
	checkEndpoint("/api/portfolio/alert", 200)
	checkEndpoint("/api/portfolio/filters", 200)

	// 3. Query view
	var sorted []map[string]any
	decodeEndpoint("/api/portfolio/holdings?sort=gainLossPercent&direction=desc", &sorted)
	if len(sorted) != len(holdings) {
		log.Fatalf("sorted view has %d holdings, want %d", len(sorted), len(holdings))
	}
	var none []map[string]any
	decodeEndpoint("/api/portfolio/holdings?sector=__none__", &none)
	if len(none) != 0 {
		log.Fatalf("expected empty view, got %d", len(none))
	}

	// 4. Exports
	checkEndpoint("/api/portfolio/holdings/export", 200)
	checkEndpoint("/api/portfolio/holdings/export?format=csv", 200)
	checkEndpoint("/api/portfolio/holdings/export?format=pdf", 400)

	// 5. Unknown route
	checkEndpoint("/api/portfolio/nope", 404)

	fmt.Println("ALL TESTS PASSED")
}

func fetch(path string) (int, []byte) {
	fmt.Printf("Testing GET %s...\n", path)
	resp, err := http.Get(baseURL() + path)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body
}

func checkEndpoint(path string, expectedStatus int) {
	status, body := fetch(path)
	if status != expectedStatus {
		log.Fatalf("Expected status %d, got %d. Body: %s", expectedStatus, status, string(body))
	}
	fmt.Printf("Response: %d bytes\n", len(body))
}

func decodeEndpoint(path string, v any) {
	status, body := fetch(path)
	if status != 200 {
		log.Fatalf("Expected status 200, got %d. Body: %s", status, string(body))
	}
	if err := json.Unmarshal(body, v); err != nil {
		log.Fatalf("Decode %s failed: %v", path, err)
	}
}
