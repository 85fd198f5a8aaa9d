// One-off: go run scripts/dumpsnapshot.go
// Prints the persisted task snapshot for debugging.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
)

func main() {
	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "PG_DSN is required")
		os.Exit(1)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		panic(err)
	}
	defer conn.Close(ctx)

	var data []byte
	if err := conn.QueryRow(ctx, `SELECT data FROM task_snapshots WHERE id = 1`).Scan(&data); err != nil {
		if err == pgx.ErrNoRows {
			fmt.Println("no snapshot saved yet")
			return
		}
		panic(err)
	}
	fmt.Println(string(data))
}
