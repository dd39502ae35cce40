package files

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/vidbatch/internal/client/localdb"
	"github.com/dmitrijs2005/vidbatch/internal/client/models"
	"github.com/dmitrijs2005/vidbatch/internal/timex"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := localdb.Open(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func item(path string, size int64) models.FileItem {
	return models.FileItem{
		Filename: filepath.Base(path),
		Filepath: path,
		Size:     size,
		Modified: timex.Timestamp{Time: time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)},
		FileType: "video",
	}
}

var videos = Key{Category: models.CategoryVideo}

func TestReplace_ThenList_KeepsOrder(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	items := []models.FileItem{item("videos/b.mp4", 2), item("videos/a.mp4", 1)}
	items[1].Metadata = map[string]any{"display_name": "Intro"}
	require.NoError(t, r.Replace(ctx, videos, items))

	got, err := r.List(ctx, videos)
	require.NoError(t, err)
	if diff := cmp.Diff(items, got); diff != "" {
		t.Fatalf("listing (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Intro", got[1].DisplayName())
}

func TestReplace_DropsStaleRows(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Replace(ctx, videos, []models.FileItem{item("videos/a.mp4", 1), item("videos/b.mp4", 2)}))
	require.NoError(t, r.Replace(ctx, videos, []models.FileItem{item("videos/c.mp4", 3)}))

	got, err := r.List(ctx, videos)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "videos/c.mp4", got[0].Filepath)
}

func TestListingsAreIndependent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	clips := Key{Category: models.CategoryVideo, Subfolder: "clips"}
	audio := Key{Category: models.CategoryAudio}

	require.NoError(t, r.Replace(ctx, videos, []models.FileItem{item("videos/a.mp4", 1)}))
	require.NoError(t, r.Replace(ctx, clips, []models.FileItem{item("videos/clips/x.mp4", 1)}))
	require.NoError(t, r.Replace(ctx, audio, []models.FileItem{item("audios/a.mp3", 1)}))

	require.NoError(t, r.Forget(ctx, clips))

	got, err := r.List(ctx, clips)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = r.List(ctx, videos)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	got, err = r.List(ctx, audio)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestForgetPaths(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Replace(ctx, videos, []models.FileItem{
		item("videos/a.mp4", 1), item("videos/b.mp4", 2), item("videos/c.mp4", 3),
	}))
	require.NoError(t, r.ForgetPaths(ctx, []string{"videos/a.mp4", "videos/c.mp4", "videos/none.mp4"}))
	require.NoError(t, r.ForgetPaths(ctx, nil))

	got, err := r.List(ctx, videos)
	require.NoError(t, err)
	assert.Equal(t, []string{"videos/b.mp4"}, models.Paths(got))
}

func TestList_ZeroModifiedStaysZero(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	it := item("csv/texts.csv", 10)
	it.Modified = timex.Timestamp{}
	require.NoError(t, r.Replace(ctx, Key{Category: models.CategoryCSV}, []models.FileItem{it}))

	got, err := r.List(ctx, Key{Category: models.CategoryCSV})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Modified.IsZero())
	assert.Nil(t, got[0].Metadata)
}

func TestReplace_RollsBackOnInsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM cached_files").WithArgs("video", "").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO cached_files").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = NewSQLiteRepository(db).Replace(context.Background(), videos, []models.FileItem{item("videos/a.mp4", 1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to cache videos/a.mp4")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplace_CommitsOnce(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM cached_files").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO cached_files").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO cached_files").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err = NewSQLiteRepository(db).Replace(context.Background(), videos,
		[]models.FileItem{item("videos/a.mp4", 1), item("videos/b.mp4", 2)})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_QueryErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT filepath").WillReturnError(errors.New("locked"))

	_, err = NewSQLiteRepository(db).List(context.Background(), videos)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to select cached files")
}

func TestList_BadMetadata(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`INSERT INTO cached_files (category, subfolder, filepath, filename, position, metadata)
		VALUES ('video', '', 'videos/x.mp4', 'x.mp4', 0, '{broken')`)
	require.NoError(t, err)

	_, err = NewSQLiteRepository(db).List(context.Background(), videos)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad metadata")
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "video:clips", Key{Category: models.CategoryVideo, Subfolder: "clips"}.String())
}
