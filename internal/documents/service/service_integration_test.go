package service

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mansoorkhan799/latex-studio-backend/internal/documents/domain"
	"github.com/Mansoorkhan799/latex-studio-backend/internal/documents/repository"
)

// setupTestPostgres connects to the integration database, skipping when
// TEST_DB_DSN is not set. Individual env vars are also supported:
//
//	TEST_DB_HOST, TEST_DB_PORT, TEST_DB_USER, TEST_DB_PASSWORD, TEST_DB_NAME
func setupTestPostgres(t *testing.T) (*pgxpool.Pool, string) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		host := os.Getenv("TEST_DB_HOST")
		port := os.Getenv("TEST_DB_PORT")
		user := os.Getenv("TEST_DB_USER")
		password := os.Getenv("TEST_DB_PASSWORD")
		dbname := os.Getenv("TEST_DB_NAME")
		if host != "" && port != "" && user != "" && dbname != "" {
			dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
				host, port, user, password, dbname)
		}
	}
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set; skipping integration test")
	}

	// Schema setup goes through database/sql so the test can run against a
	// bare database.
	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer sqlDB.Close()

	_, err = sqlDB.Exec(`
CREATE TABLE IF NOT EXISTS documents (
    id           TEXT PRIMARY KEY,
    owner_id     TEXT NOT NULL,
    name         TEXT NOT NULL,
    content      TEXT NOT NULL DEFAULT '',
    is_protected BOOLEAN NOT NULL DEFAULT FALSE,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    deleted_at   TIMESTAMPTZ
);
CREATE TABLE IF NOT EXISTS tree_nodes (
    id          TEXT PRIMARY KEY,
    owner_id    TEXT NOT NULL,
    parent_id   TEXT,
    name        TEXT NOT NULL,
    kind        TEXT NOT NULL,
    position    INT NOT NULL DEFAULT 0,
    document_id TEXT
);`)
	require.NoError(t, err)

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	// Isolate each run with a fresh owner.
	return pool, "test-owner-" + uuid.New().String()
}

func TestDocumentLifecycle(t *testing.T) {
	pool, owner := setupTestPostgres(t)
	svc := NewDocumentService(
		repository.NewDocumentRepository(pool),
		repository.NewTreeRepository(pool),
	)
	ctx := context.Background()

	doc, err := svc.Save(ctx, owner, "thesis.tex", "\\section{Intro}", nil, false)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "thesis.tex", doc.Name)

	got, err := svc.Get(ctx, owner, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "\\section{Intro}", got.Content)

	updated, err := svc.Update(ctx, owner, doc.ID, "\\section{Revised}")
	require.NoError(t, err)
	assert.Equal(t, "\\section{Revised}", updated.Content)

	renamed, err := svc.Rename(ctx, owner, doc.ID, "thesis-v2.tex")
	require.NoError(t, err)
	assert.Equal(t, "thesis-v2.tex", renamed.Name)

	flat, err := svc.FetchFlat(ctx, owner)
	require.NoError(t, err)
	require.Len(t, flat, 1)
	assert.Empty(t, flat[0].Content) // listing omits bodies

	ok, err := svc.Delete(ctx, owner, doc.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.Get(ctx, owner, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTreeNesting(t *testing.T) {
	pool, owner := setupTestPostgres(t)
	svc := NewDocumentService(
		repository.NewDocumentRepository(pool),
		repository.NewTreeRepository(pool),
	)
	ctx := context.Background()

	folder, err := svc.CreateFolder(ctx, owner, nil, "chapters")
	require.NoError(t, err)
	assert.Equal(t, domain.NodeFolder, folder.Kind)

	_, err = svc.Save(ctx, owner, "ch1.tex", "", &folder.ID, false)
	require.NoError(t, err)
	_, err = svc.Save(ctx, owner, "notes.tex", "", nil, false)
	require.NoError(t, err)

	tree, err := svc.FetchTree(ctx, owner)
	require.NoError(t, err)
	require.Len(t, tree, 2) // folder and root-level file

	var chapters *domain.TreeNode
	for _, n := range tree {
		if n.Name == "chapters" {
			chapters = n
		}
	}
	require.NotNil(t, chapters)
	require.Len(t, chapters.Children, 1)
	assert.Equal(t, "ch1.tex", chapters.Children[0].Name)
}

func TestMoveAndDeleteNode(t *testing.T) {
	pool, owner := setupTestPostgres(t)
	svc := NewDocumentService(
		repository.NewDocumentRepository(pool),
		repository.NewTreeRepository(pool),
	)
	ctx := context.Background()

	src, err := svc.CreateFolder(ctx, owner, nil, "src")
	require.NoError(t, err)
	dst, err := svc.CreateFolder(ctx, owner, nil, "dst")
	require.NoError(t, err)
	doc, err := svc.Save(ctx, owner, "file.tex", "", &src.ID, false)
	require.NoError(t, err)
	_ = doc

	tree, err := svc.FetchTree(ctx, owner)
	require.NoError(t, err)
	var fileNode *domain.TreeNode
	for _, n := range tree {
		if n.Name == "src" {
			require.Len(t, n.Children, 1)
			fileNode = n.Children[0]
		}
	}
	require.NotNil(t, fileNode)

	moved, err := svc.MoveNode(ctx, owner, fileNode.ID, &dst.ID, 0)
	require.NoError(t, err)
	require.NotNil(t, moved.ParentID)
	assert.Equal(t, dst.ID, *moved.ParentID)

	// Deleting the folder reparents its children to the root.
	ok, err := svc.DeleteNode(ctx, owner, dst.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	tree, err = svc.FetchTree(ctx, owner)
	require.NoError(t, err)
	names := make([]string, 0, len(tree))
	for _, n := range tree {
		names = append(names, n.Name)
	}
	assert.ElementsMatch(t, []string{"src", "file.tex"}, names)
}
