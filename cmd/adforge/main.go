// adforge is the operator CLI for the admin backend. Most commands go
// through the HTTP API; seed talks to the store backend directly.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/adforge-dev/adforge-admin/internal/config"
	"github.com/adforge-dev/adforge-admin/internal/store"
	"github.com/adforge-dev/adforge-admin/internal/taxonomy"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}
	_ = godotenv.Load()

	baseURL := os.Getenv("ADFORGE_ADMIN_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8090"
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "list":
		if len(args) < 1 {
			log.Fatal("Usage: adforge list <taxonomy>")
		}
		body := request(http.MethodGet, baseURL+"/api/"+args[0], nil)
		printJSON(body)

	case "create":
		if len(args) < 2 {
			log.Fatal(`Usage: adforge create <taxonomy> '<json>'`)
		}
		body := request(http.MethodPost, baseURL+"/api/"+args[0], []byte(args[1]))
		printJSON(body)

	case "update":
		if len(args) < 2 {
			log.Fatal(`Usage: adforge update <taxonomy> '<json>'`)
		}
		body := request(http.MethodPut, baseURL+"/api/"+args[0], []byte(args[1]))
		printJSON(body)

	case "delete":
		if len(args) < 2 {
			log.Fatal("Usage: adforge delete <taxonomy> <id>")
		}
		body := request(http.MethodDelete, baseURL+"/api/"+args[0]+"?id="+args[1], nil)
		printJSON(body)

	case "track":
		if len(args) < 2 {
			log.Fatal("Usage: adforge track <email> <productCategory>")
		}
		payload, _ := json.Marshal(map[string]string{
			"email":           args[0],
			"productCategory": args[1],
			"timestamp":       time.Now().UTC().Format(time.RFC3339),
			"source":          "adforge-cli",
		})
		body := request(http.MethodPost, baseURL+"/api/track/prompt-discovery", payload)
		printJSON(body)

	case "seed":
		seed()

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

// seed migrates the demo snapshot into the configured store backend so a
// fresh deployment starts with renderable data.
func seed() {
	cfg := config.Parse()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var dst store.Store
	var err error
	switch cfg.StoreBackend {
	case "file":
		dst, err = store.NewFileStore(cfg.DataDir)
	case "postgres":
		dst, err = store.NewPostgresStore(ctx, cfg.PostgresDSN)
	case "remote":
		dst, err = store.ConnectRemote(cfg.StoreAddr)
	default:
		log.Fatalf("seed requires a real backend, got %q", cfg.StoreBackend)
	}
	if err != nil {
		log.Fatalf("Failed to open %s backend: %v", cfg.StoreBackend, err)
	}

	src := store.NewDemoStore(taxonomy.DemoSnapshot())
	if err := store.Migrate(ctx, src, dst); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	fmt.Printf("Seeded %s backend with the demo snapshot\n", cfg.StoreBackend)
}

func request(method, url string, payload []byte) []byte {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		log.Fatal(err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("Failed to read response: %v", err)
	}
	if resp.StatusCode >= 400 {
		fmt.Fprintf(os.Stderr, "HTTP %d\n", resp.StatusCode)
	}
	return body
}

func printJSON(raw []byte) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		fmt.Println(string(raw))
		return
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(string(raw))
		return
	}
	fmt.Println(string(out))
}

func printUsage() {
	fmt.Println("AdForge CLI - Interface for adforge-admind")
	fmt.Println("\nTaxonomies: brand-profiles, demographic-profiles, legal-guidelines")
	fmt.Println("\nUsage:")
	fmt.Println("  adforge list <taxonomy>")
	fmt.Println("  adforge create <taxonomy> '<json>'")
	fmt.Println("  adforge update <taxonomy> '<json>'")
	fmt.Println("  adforge delete <taxonomy> <id>")
	fmt.Println("  adforge track <email> <productCategory>")
	fmt.Println("  adforge seed")
	fmt.Println("\nEnvironment Variables:")
	fmt.Println("  ADFORGE_ADMIN_URL        Address of the admin API (default: http://localhost:8090)")
	fmt.Println("  ADFORGE_STORE_BACKEND    Backend for seed: file, postgres or remote")
}
