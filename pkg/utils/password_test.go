package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifiesAndNeverEqualsPlaintext(t *testing.T) {
	pw := "Sup3rSecret!x"
	h := HashPassword(pw)

	require.NotEmpty(t, h)
	assert.NotEqual(t, pw, h)
	assert.True(t, CheckPassword(pw, h))
	assert.False(t, CheckPassword("wrong", h))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	pw := "Sup3rSecret!x"
	assert.NotEqual(t, HashPassword(pw), HashPassword(pw))
}

func TestHashPassword_LongPasswordTruncatedAt72Bytes(t *testing.T) {
	long := strings.Repeat("Aa1!", 30) // 120 字节

	h := HashPassword(long)
	require.NotEmpty(t, h) // x/crypto 对 >72 字节会报错，截断后不会
	assert.True(t, CheckPassword(long, h))

	// 只有前 72 字节参与比较，和 bcryptjs 一致
	assert.True(t, CheckPassword(long[:72], h))
	assert.True(t, CheckPassword(long[:72]+"different-tail!", h))
	assert.False(t, CheckPassword(long[:71], h))
}
