package fs_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/haris936hk/EchoNote-sub002/internal/adapters/blobstore/fs"
	"github.com/haris936hk/EchoNote-sub002/internal/config"
	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*fs.Store, string) {
	t.Helper()
	root := t.TempDir()
	store, err := fs.NewStore(config.StorageConfig{
		Root:           root,
		PublicBasePath: "/storage/audio",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return store, root
}

func TestNewStore_CreatesDirectoriesIdempotently(t *testing.T) {
	root := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := fs.NewStore(config.StorageConfig{Root: root}, logger)
	require.NoError(t, err)

	for _, dir := range []string{"temp", "processed", "audio"} {
		info, err := os.Stat(filepath.Join(root, dir))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// second init over existing directories must succeed
	_, err = fs.NewStore(config.StorageConfig{Root: root}, logger)
	assert.NoError(t, err)
}

func TestStoreTemp_WritesBlobWithHexID(t *testing.T) {
	store, root := newTestStore(t)

	content := []byte("not really audio")
	tf, err := store.StoreTemp(bytes.NewReader(content), "standup.wav")
	require.NoError(t, err)

	assert.Len(t, tf.ID, 32)
	assert.True(t, strings.HasSuffix(tf.Name, ".wav"))
	assert.Equal(t, int64(len(content)), tf.Size)
	assert.Equal(t, filepath.Join(root, "temp", tf.Name), tf.Path)
	assert.Equal(t, tf.Path, store.TempPath(tf.Name))

	onDisk, err := os.ReadFile(tf.Path)
	require.NoError(t, err)
	assert.Equal(t, content, onDisk)
}

func TestPromoteAudio_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	meetingID := uuid.New()

	content := bytes.Repeat([]byte{0x52, 0x49, 0x46, 0x46}, 512)
	tf, err := store.StoreTemp(bytes.NewReader(content), "standup.wav")
	require.NoError(t, err)

	af, err := store.PromoteAudio(tf.Name, meetingID)
	require.NoError(t, err)

	assert.Equal(t, meetingID.String()+".wav", af.Name)
	assert.Equal(t, "/storage/audio/"+meetingID.String()+".wav", af.URL)
	assert.Equal(t, "audio/wav", af.MimeType)
	assert.Equal(t, int64(len(content)), af.Size)

	// the temp file was moved, not copied
	_, err = os.Stat(tf.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	got, err := store.OpenAudio(af.Name)
	require.NoError(t, err)
	assert.Equal(t, af.Size, got.Size)
	assert.Equal(t, "audio/wav", got.MimeType)

	onDisk, err := os.ReadFile(got.Path)
	require.NoError(t, err)
	assert.Equal(t, content, onDisk)
}

func TestPromoteAudio_ReplacesPreviousFile(t *testing.T) {
	store, _ := newTestStore(t)
	meetingID := uuid.New()

	first, err := store.StoreTemp(strings.NewReader("first take"), "a.mp3")
	require.NoError(t, err)
	_, err = store.PromoteAudio(first.Name, meetingID)
	require.NoError(t, err)

	second, err := store.StoreTemp(strings.NewReader("second take, new extension"), "b.m4a")
	require.NoError(t, err)
	af, err := store.PromoteAudio(second.Name, meetingID)
	require.NoError(t, err)

	ids, err := store.ListAudioIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{meetingID.String()}, ids)

	got, err := store.OpenAudio(af.Name)
	require.NoError(t, err)
	onDisk, err := os.ReadFile(got.Path)
	require.NoError(t, err)
	assert.Equal(t, "second take, new extension", string(onDisk))
}

func TestOpenAudio_NotFound(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.OpenAudio(uuid.New().String() + ".mp3")
	assert.ErrorIs(t, err, domain.ErrAudioNotFound)
}

func TestDeleteAudio_Idempotent(t *testing.T) {
	store, _ := newTestStore(t)
	meetingID := uuid.New()

	tf, err := store.StoreTemp(strings.NewReader("audio"), "x.mp3")
	require.NoError(t, err)
	af, err := store.PromoteAudio(tf.Name, meetingID)
	require.NoError(t, err)

	require.NoError(t, store.DeleteAudio(meetingID))
	_, err = store.OpenAudio(af.Name)
	assert.ErrorIs(t, err, domain.ErrAudioNotFound)

	// second delete is a no-op
	assert.NoError(t, store.DeleteAudio(meetingID))
}

func TestDeleteTemp_Idempotent(t *testing.T) {
	store, _ := newTestStore(t)

	tf, err := store.StoreTemp(strings.NewReader("audio"), "x.mp3")
	require.NoError(t, err)

	require.NoError(t, store.DeleteTemp(tf.Name))
	assert.NoError(t, store.DeleteTemp(tf.Name))
}

func TestPurgeTemp_DeletesOnlyStaleFiles(t *testing.T) {
	store, root := newTestStore(t)

	stale, err := store.StoreTemp(strings.NewReader("two hours old"), "old.mp3")
	require.NoError(t, err)
	fresh, err := store.StoreTemp(strings.NewReader("ten minutes old"), "new.mp3")
	require.NoError(t, err)

	twoHoursAgo := time.Now().Add(-2 * time.Hour)
	tenMinutesAgo := time.Now().Add(-10 * time.Minute)
	require.NoError(t, os.Chtimes(stale.Path, twoHoursAgo, twoHoursAgo))
	require.NoError(t, os.Chtimes(fresh.Path, tenMinutesAgo, tenMinutesAgo))

	count, err := store.PurgeTemp(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = os.Stat(stale.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	_, err = os.Stat(fresh.Path)
	assert.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(root, "temp"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPurgeProcessed_DeletesEverything(t *testing.T) {
	store, root := newTestStore(t)

	processed := filepath.Join(root, "processed")
	require.NoError(t, os.WriteFile(filepath.Join(processed, "a.wav"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(processed, "b.json"), []byte("b"), 0o644))

	count, err := store.PurgeProcessed()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	entries, err := os.ReadDir(processed)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStats_AggregatesPerAreaAndTotal(t *testing.T) {
	store, root := newTestStore(t)

	_, err := store.StoreTemp(strings.NewReader("12345"), "t.mp3")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "processed", "p.wav"), []byte("1234567890"), 0o644))

	tf, err := store.StoreTemp(strings.NewReader("123"), "a.wav")
	require.NoError(t, err)
	_, err = store.PromoteAudio(tf.Name, uuid.New())
	require.NoError(t, err)

	stats, err := store.Stats()
	require.NoError(t, err)

	assert.Equal(t, domain.AreaStats{Count: 1, Bytes: 5}, stats.Temp)
	assert.Equal(t, domain.AreaStats{Count: 1, Bytes: 10}, stats.Processed)
	assert.Equal(t, domain.AreaStats{Count: 1, Bytes: 3}, stats.Audio)
	assert.Equal(t, domain.AreaStats{Count: 3, Bytes: 18}, stats.Total)
}
