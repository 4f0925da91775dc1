package employee

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/Suvo-Ghosh/EMS/internal/platform/config"
	"github.com/Suvo-Ghosh/EMS/internal/platform/db"
)

func TestCreateAssignsDistinctCodesConcurrently(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, config.Config{DatabaseURL: dbURL})
	if err != nil {
		t.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		t.Fatalf("migrations failed: %v", err)
	}

	store := NewStore(pool)
	nano := time.Now().UnixNano()

	const workers = 8
	codes := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			emp, err := store.Create(ctx, CreateParams{
				FullName:       fmt.Sprintf("Concurrent Worker %d", i),
				Email:          fmt.Sprintf("concurrent-%d-%d@example.com", nano, i),
				PasswordHash:   "not-a-real-hash",
				EmploymentType: EmploymentFullTime,
			})
			if err != nil {
				t.Errorf("worker %d: create failed: %v", i, err)
				return
			}
			codes <- emp.EmployeeCode
		}(i)
	}
	wg.Wait()
	close(codes)

	seen := make(map[string]bool)
	for code := range codes {
		if seen[code] {
			t.Fatalf("employee code %s assigned twice", code)
		}
		seen[code] = true
	}
	if len(seen) != workers {
		t.Fatalf("expected %d distinct codes, got %d", workers, len(seen))
	}
}
