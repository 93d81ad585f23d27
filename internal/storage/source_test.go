package storage_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghostkey/ghostkey/internal/clock"
	"github.com/ghostkey/ghostkey/internal/storage"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("ENTER\n"), 0o644))
	return p
}

func TestSelectScriptPriority(t *testing.T) {
	tests := []struct {
		name    string
		files   []string
		ducky   bool
		want    string
		wantErr bool
	}{
		{name: "no files", files: nil, ducky: true, wantErr: true},
		{name: "ducky normal", files: []string{storage.DuckyFile}, ducky: true, want: storage.DuckyFile},
		{name: "custom normal", files: []string{storage.CustomFile}, ducky: false, want: storage.CustomFile},
		{name: "ducky ignores commands.txt", files: []string{storage.CustomFile}, ducky: true, wantErr: true},
		{
			name:  "layout test beats everything",
			files: []string{storage.DuckyFile, storage.ShiftTestFile, storage.ComboTestFile, storage.LayoutTestFile},
			ducky: true,
			want:  storage.LayoutTestFile,
		},
		{
			name:  "combo test beats shift test",
			files: []string{storage.ShiftTestFile, storage.ComboTestFile},
			ducky: true,
			want:  storage.ComboTestFile,
		},
		{
			name:  "shift test beats normal",
			files: []string{storage.DuckyFile, storage.ShiftTestFile},
			ducky: true,
			want:  storage.ShiftTestFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				touch(t, dir, f)
			}

			got, err := storage.SelectScript(dir, tt.ducky)
			if tt.wantErr {
				assert.ErrorIs(t, err, storage.ErrNoScript)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.want), got)
		})
	}
}

func TestSelectScriptSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, storage.DuckyFile), 0o755))
	touch(t, dir, storage.CustomFile)

	_, err := storage.SelectScript(dir, true)
	assert.ErrorIs(t, err, storage.ErrNoScript)
}

func TestWaitForMount(t *testing.T) {
	t.Run("already mounted", func(t *testing.T) {
		clk := &clock.Fake{}
		err := storage.WaitForMount(clk, t.TempDir(), 3, time.Second)
		require.NoError(t, err)
		assert.Empty(t, clk.Slept)
	})

	t.Run("never appears", func(t *testing.T) {
		clk := &clock.Fake{}
		dir := filepath.Join(t.TempDir(), "missing")
		err := storage.WaitForMount(clk, dir, 4, 500*time.Millisecond)
		assert.ErrorIs(t, err, storage.ErrNoCard)
		// No sleep after the final attempt.
		assert.Len(t, clk.Slept, 3)
	})
}

func TestFileSourceLines(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, storage.DuckyFile)
	require.NoError(t, os.WriteFile(p, []byte("REM hi\nSTRING abc\n\nENTER"), 0o644))

	src := storage.NewFileSource(p)
	assert.Equal(t, p, src.Path())

	// Two full passes, as the repeat loop performs.
	for pass := 0; pass < 2; pass++ {
		it, err := src.Lines()
		require.NoError(t, err)

		var lines []string
		for it.Next() {
			lines = append(lines, it.Text())
		}
		require.NoError(t, it.Err())
		require.NoError(t, it.Close())

		assert.Equal(t, []string{"REM hi", "STRING abc", "", "ENTER"}, lines, "pass %d", pass)
	}
}

func TestFileSourceOpenFailure(t *testing.T) {
	src := storage.NewFileSource(filepath.Join(t.TempDir(), "nope.txt"))
	_, err := src.Lines()
	assert.Error(t, err)
}
