package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveFileCreatesDirs(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "c.txt")
	require.NoError(t, SaveFile(target, []byte("内容")))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "内容", string(data))
	assert.True(t, FileExists(target))
}

// 写入后目录里不残留临时文件
func TestSaveFileNoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, SaveFile(filepath.Join(dir, "out.json"), []byte("{}")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.json", entries[0].Name())
}

func TestFileExists(t *testing.T) {
	assert.False(t, FileExists(filepath.Join(t.TempDir(), "nope")))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "Intro_Data_Science", SanitizeFilename("Intro/Data:Science"))
	assert.Equal(t, "a_b_c_d_e_f_g_h_i", SanitizeFilename(`a<b>c:d"e/f\g|h?i`))
	assert.Equal(t, "中文 名称", SanitizeFilename("中文 名称"))

	long := strings.Repeat("课", 300)
	sanitized := SanitizeFilename(long)
	assert.Equal(t, 200, len([]rune(sanitized)))
}
