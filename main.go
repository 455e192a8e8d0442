package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/asaidimu/go-dml/core/persistence"
	"github.com/asaidimu/go-dml/core/query"
	"github.com/asaidimu/go-dml/sqlite"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const createUsersTable = `CREATE TABLE IF NOT EXISTS "users" (
	"id" INTEGER PRIMARY KEY,
	"name" TEXT NOT NULL,
	"email" TEXT NOT NULL UNIQUE,
	"age" INTEGER,
	"is_active" INTEGER NOT NULL DEFAULT 1
)`

type user struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Age      int    `json:"age"`
	IsActive bool   `json:"is_active"`
}

func main() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Failed to load .env: %v", err)
	}
	dbPath := os.Getenv("DML_SQLITE_PATH")
	if dbPath == "" {
		dbPath = ":memory:"
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	conn, err := sqlite.Open(ctx, dbPath, nil, logger)
	if err != nil {
		log.Fatalf("Failed to open database connection: %v", err)
	}
	defer func() {
		if cErr := conn.Close(); cErr != nil {
			log.Printf("Error closing database connection: %v", cErr)
		}
		fmt.Println("Database connection closed.")
	}()

	if _, err := conn.Exec(ctx, createUsersTable); err != nil {
		log.Fatalf("Failed to create 'users' table: %v", err)
	}
	fmt.Printf("Opened %s and created 'users' table.\n", dbPath)

	executor, err := persistence.NewExecutor(conn, logger)
	if err != nil {
		log.Fatalf("Failed to initialize executor: %v", err)
	}

	for _, eventType := range []persistence.ExecutionEventType{
		persistence.StatementInsertSuccess,
		persistence.StatementUpdateSuccess,
		persistence.StatementDeleteSuccess,
	} {
		unsubscribe := executor.Subscribe(eventType, func(ctx context.Context, event persistence.ExecutionEvent) error {
			fmt.Printf("[%s] %s -> %v\n", event.Type, event.Statement, event.Output)
			return nil
		})
		defer unsubscribe()
	}

	fmt.Println("Inserting sample data...")
	for _, u := range []user{
		{ID: 1, Name: "Alice Smith", Email: "alice@example.com", Age: 30, IsActive: true},
		{ID: 2, Name: "Alice O'Hara", Email: "alice2@example.com", Age: 27, IsActive: true},
		{ID: 3, Name: "Bob Jones", Email: "bob@example.com", Age: 41, IsActive: false},
	} {
		if _, err := executor.InsertRecord(ctx, "users", u); err != nil {
			log.Fatalf("Failed to insert %s: %v", u.Email, err)
		}
	}

	b := executor.NewBuilder()
	pattern, err := b.LikeValue("Alice", query.MatchForward, "", "")
	if err != nil {
		log.Fatalf("Failed to escape pattern: %v", err)
	}
	b.SelectMode("DISTINCT").
		Select(b.Identifier("id")).
		Select(b.Identifier("name")).
		Select(b.Identifier("email")).
		Select(b.Identifier("age")).
		Select(b.Identifier("is_active")).
		From(b.Identifier("users")).
		WhereLike(b.Identifier("name"), pattern, false).
		Where(b.Identifier("age"), fmt.Sprint(b.IntValue("25")), ">").
		OrderBy(b.Identifier("age") + " DESC").
		Limit(10, 0)

	fmt.Println("Query:", b.GetSelectQuery())
	rows, err := executor.Select(ctx, b)
	if err != nil {
		log.Fatalf("Failed to query users: %v", err)
	}
	users, err := persistence.ScanRows[user](rows)
	if err != nil {
		log.Fatalf("Failed to decode users: %v", err)
	}
	for _, u := range users {
		fmt.Printf("  %d %s <%s> age %d active %t\n", u.ID, u.Name, u.Email, u.Age, u.IsActive)
	}

	update := executor.NewBuilder()
	update.Update(update.Identifier("users")).
		Set(update.Identifier("is_active"), "0").
		Where(update.Identifier("age"), "35", "<")
	if _, err := executor.Update(ctx, update); err != nil {
		log.Fatalf("Failed to deactivate users: %v", err)
	}

	del := executor.NewBuilder()
	del.From(del.Identifier("users")).Where(del.Identifier("is_active"), "0", "")
	deleted, err := executor.Delete(ctx, del)
	if err != nil {
		log.Fatalf("Failed to delete inactive users: %v", err)
	}
	fmt.Printf("Deleted %d inactive users.\n", deleted)
}
