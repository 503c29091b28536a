package store

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"testing"

	"github.com/adforge-dev/adforge-admin/internal/taxonomy"
)

// fakeDaemon implements just enough of the storage daemon's line protocol to
// exercise the client: records live in a map for the lifetime of the test.
func fakeDaemon(t *testing.T) string {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	t.Cleanup(func() { listener.Close() })

	data := map[string][]string{}

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer c.Close()
				reader := bufio.NewReader(c)
				for {
					line, err := reader.ReadString('\n')
					if err != nil {
						return
					}
					parts := strings.SplitN(strings.TrimSpace(line), " ", 3)
					switch parts[0] {
					case "LIST":
						docs := data[parts[1]]
						fmt.Fprintf(c, "OK [%s]\n", strings.Join(docs, ","))
					case "INSERT":
						data[parts[1]] = append(data[parts[1]], parts[2])
						fmt.Fprintf(c, "OK %s\n", parts[2])
					case "UPDATE":
						fmt.Fprintln(c, "ERR record not found")
					case "DELETE":
						fmt.Fprintln(c, "OK")
					case "QUIT":
						return
					default:
						fmt.Fprintln(c, "ERR unknown command")
					}
				}
			}(conn)
		}
	}()

	return listener.Addr().String()
}

func TestRemoteStoreCommands(t *testing.T) {
	addr := fakeDaemon(t)
	client, err := ConnectRemote(addr)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer client.Close()
	ctx := context.Background()

	doc, err := client.Insert(ctx, taxonomy.KindBrand, json.RawMessage(`{"id": "brand-7", "name": "Remote Brand"}`))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if DocID(doc) != "brand-7" {
		t.Errorf("Unexpected insert echo: %s", doc)
	}

	records, err := client.List(ctx, taxonomy.KindBrand)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 || DocID(records[0]) != "brand-7" {
		t.Errorf("Unexpected list result: %v", records)
	}

	if err := client.Delete(ctx, taxonomy.KindBrand, "brand-7"); err != nil {
		t.Errorf("Delete failed: %v", err)
	}

	_, err = client.Update(ctx, taxonomy.KindBrand, "missing", json.RawMessage(`{"id":"missing"}`))
	if err != ErrNotFound {
		t.Errorf("Expected ErrNotFound from daemon, got %v", err)
	}
}

func TestRemoteStoreConnectFailure(t *testing.T) {
	_, err := ConnectRemote("127.0.0.1:1")
	if err == nil {
		t.Fatal("Expected connection error for a closed port")
	}
}
