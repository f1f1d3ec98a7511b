package pg

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/crier-dev/crier/internal/config"
	"github.com/crier-dev/crier/internal/domain"
)

var storage *Storage

func TestMain(m *testing.M) {
	ctx := context.Background()
	var container *postgres.PostgresContainer
	storage, container = mustSetup(ctx)

	exitCode := m.Run()

	// os.Exit skips deferred calls, so tear down explicitly first.
	teardown(ctx, storage, container)
	os.Exit(exitCode)
}

func mustSetup(ctx context.Context) (*Storage, *postgres.PostgresContainer) {
	dbName := "crier"
	dbUser := "user"
	dbPassword := "password"
	container, err := postgres.Run(ctx,
		"postgres:15.3-alpine",
		postgres.WithInitScripts(filepath.Join("..", "..", "..", "migrations", "init.sql")),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			// First, we wait for the container to log readiness twice.
			// This is because it will restart itself after the first startup.
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("failed to start container: %s", err)
	}
	containerPort, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		log.Fatalf("failed to obtain container port: %s", err)
	}
	port, err := strconv.Atoi(containerPort.Port())
	if err != nil {
		log.Fatalf("failed to obtain int container port: %s", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("failed to obtain container host: %s", err)
	}

	storage, err := New(&config.Config{Public: config.Public{
		BoardsPerPage: 50,
		Pg:            config.Pg{Host: host, Port: port, User: dbUser, Password: dbPassword, Dbname: dbName},
	}})
	if err != nil {
		log.Fatalf("failed to connect to postgres container: %s", err)
	}
	return storage, container
}

func teardown(ctx context.Context, storage *Storage, container *postgres.PostgresContainer) {
	if err := storage.Cleanup(); err != nil {
		log.Printf("failed to close storage connection: %s", err)
	}
	if err := container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
}

func generateString(t *testing.T) string {
	t.Helper()
	return fmt.Sprintf("t%d%d", time.Now().UnixNano()%1e9, rand.Intn(1e4))
}

// createUser inserts a throwaway user and removes it on cleanup.
func createUser(t *testing.T) domain.User {
	t.Helper()
	username := generateString(t)
	id, err := storage.SaveUser(domain.User{Username: username, PassHash: "hash"})
	if err != nil {
		t.Fatalf("failed to create user: %s", err)
	}
	t.Cleanup(func() {
		_ = storage.DeleteUser(id)
	})
	return domain.User{Id: id, Username: username}
}

// createBoard inserts a throwaway board owned by the given user.
func createBoard(t *testing.T, owner domain.UserId, threshold int) domain.BoardId {
	t.Helper()
	id, err := storage.CreateBoard(domain.BoardCreationData{
		Name:          generateString(t),
		Description:   "test board",
		VoteThreshold: threshold,
		CreatedBy:     owner,
	})
	if err != nil {
		t.Fatalf("failed to create board: %s", err)
	}
	t.Cleanup(func() {
		_ = storage.DeleteBoard(id)
	})
	return id
}

func createPost(t *testing.T, board domain.BoardId, author domain.UserId) domain.PostId {
	t.Helper()
	id, err := storage.CreatePost(domain.PostCreationData{
		Board:   board,
		Subject: generateString(t),
		Author:  author,
	})
	if err != nil {
		t.Fatalf("failed to create post: %s", err)
	}
	return id
}
