package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"todo_webapp/internal/domain"
)

// Drives a running server through create, list, update and delete.
func main() {
	base := os.Getenv("API_BASE_URL")
	if base == "" {
		port := os.Getenv("APP_PORT")
		if port == "" {
			port = "8080"
		}
		// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
		base = fmt.Sprintf("http://127.0.0.1:%s", port)
	}
	base = strings.TrimRight(base, "/") + "/api/todos"

	client := &http.Client{Timeout: 5 * time.Second}

	var created domain.Todo
	mustJSON(client, http.MethodPost, base, map[string]any{
		"title":       "smoke test",
		"description": "created by api_smoke",
	}, &created)
	log.Printf("created id=%d title=%q\n", created.ID, created.Title)

	var todos []domain.Todo
	mustJSON(client, http.MethodGet, base, nil, &todos)
	found := false
	for _, t := range todos {
		if t.ID == created.ID {
			found = true
		}
	}
	if !found {
		log.Fatalf("created todo %d missing from list of %d", created.ID, len(todos))
	}
	log.Printf("listed %d todos\n", len(todos))

	var updated domain.Todo
	mustJSON(client, http.MethodPut, fmt.Sprintf("%s/%d", base, created.ID), map[string]any{
		"title":       "smoke test (done)",
		"description": "this description is not applied",
		"completed":   true,
	}, &updated)
	if !updated.Completed || updated.Description != created.Description {
		log.Fatalf("unexpected update result: %+v", updated)
	}
	log.Printf("updated id=%d completed=%v\n", updated.ID, updated.Completed)

	outcome := mustText(client, http.MethodDelete, fmt.Sprintf("%s/%d", base, created.ID))
	if outcome != domain.DeleteSucceededMessage {
		log.Fatalf("delete outcome %q", outcome)
	}
	log.Printf("deleted id=%d outcome=%q\n", created.ID, outcome)

	outcome = mustText(client, http.MethodDelete, fmt.Sprintf("%s/%d", base, created.ID))
	log.Printf("second delete outcome=%q\n", outcome)
}

func mustJSON(client *http.Client, method, url string, body any, out any) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			log.Fatalf("encode body: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		log.Fatalf("build %s %s: %v", method, url, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, url, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(res.Body)
		log.Fatalf("%s %s: status %d: %s", method, url, res.StatusCode, msg)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		log.Fatalf("decode %s %s: %v", method, url, err)
	}
}

func mustText(client *http.Client, method, url string) string {
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		log.Fatalf("build %s %s: %v", method, url, err)
	}
	res, err := client.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, url, err)
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		log.Fatalf("read %s %s: %v", method, url, err)
	}
	if res.StatusCode != http.StatusOK {
		log.Fatalf("%s %s: status %d", method, url, res.StatusCode)
	}
	return string(b)
}
