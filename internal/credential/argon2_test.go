package credential

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testParams = Params{Time: 1, MemKiB: 1024, Par: 1}

func newTestHasher(t *testing.T) *Argon2id {
	t.Helper()
	h, err := NewArgon2id(testParams)
	require.NoError(t, err)
	return h
}

func TestNewArgon2id_RejectsZeroParams(t *testing.T) {
	t.Parallel()

	_, err := NewArgon2id(Params{Time: 0, MemKiB: 1024, Par: 1})
	assert.Error(t, err)
	_, err = NewArgon2id(Params{Time: 1, MemKiB: 0, Par: 1})
	assert.Error(t, err)
	_, err = NewArgon2id(Params{Time: 1, MemKiB: 1024, Par: 0})
	assert.Error(t, err)
}

func TestArgon2id_HashFormat(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)
	encoded, err := h.Hash("Str0ng!Pwd")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=1024,t=1,p=1$"))
	assert.NotContains(t, encoded, "Str0ng!Pwd")
	assert.Len(t, strings.Split(encoded, "$"), 6)
}

func TestArgon2id_HashIsSalted(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)
	first, err := h.Hash("Str0ng!Pwd")
	require.NoError(t, err)
	second, err := h.Hash("Str0ng!Pwd")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestArgon2id_HashEmpty(t *testing.T) {
	t.Parallel()

	_, err := newTestHasher(t).Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestArgon2id_Verify(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)
	encoded, err := h.Hash("Str0ng!Pwd")
	require.NoError(t, err)

	ok, err := h.Verify("Str0ng!Pwd", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", encoded)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = h.Verify("str0ng!Pwd", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2id_VerifyUsesEmbeddedParams(t *testing.T) {
	t.Parallel()

	old, err := NewArgon2id(Params{Time: 2, MemKiB: 2048, Par: 2})
	require.NoError(t, err)
	encoded, err := old.Hash("Str0ng!Pwd")
	require.NoError(t, err)

	ok, err := newTestHasher(t).Verify("Str0ng!Pwd", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgon2id_VerifyInvalidHash(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)
	tests := []struct {
		name    string
		encoded string
	}{
		{name: "empty", encoded: ""},
		{name: "plaintext", encoded: "Str0ng!Pwd"},
		{name: "wrong algorithm", encoded: "$bcrypt$v=19$m=1024,t=1,p=1$AAAA$AAAA"},
		{name: "bad version", encoded: "$argon2id$v=x$m=1024,t=1,p=1$AAAA$AAAA"},
		{name: "bad params", encoded: "$argon2id$v=19$m=a,t=1,p=1$AAAA$AAAA"},
		{name: "zero params", encoded: "$argon2id$v=19$m=0,t=1,p=1$AAAA$AAAA"},
		{name: "bad salt", encoded: "$argon2id$v=19$m=1024,t=1,p=1$!!!$AAAA"},
		{name: "bad key", encoded: "$argon2id$v=19$m=1024,t=1,p=1$AAAA$!!!"},
		{name: "empty key", encoded: "$argon2id$v=19$m=1024,t=1,p=1$AAAA$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ok, err := h.Verify("Str0ng!Pwd", tt.encoded)
			assert.False(t, ok)
			assert.ErrorIs(t, err, ErrInvalidHash)
		})
	}
}
