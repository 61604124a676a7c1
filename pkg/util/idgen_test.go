package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 节点号超出容量时必须报错，调用方据此在启动期退出
func TestInitNode(t *testing.T) {
	assert.Error(t, InitNode(1 << 10))

	require.NoError(t, InitNode(1))
	assert.NotZero(t, NewID())
}
