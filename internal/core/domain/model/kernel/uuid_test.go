package kernel_test

import (
	"testing"

	"manufacturing/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	t.Run("should create a valid identifier", func(t *testing.T) {
		id := kernel.NewUUID()
		require.NoError(t, id.Validate())
	})

	t.Run("should create unique identifiers", func(t *testing.T) {
		assert.False(t, kernel.NewUUID().IsEqual(kernel.NewUUID()))
	})
}

func TestUUIDFromString(t *testing.T) {
	const raw = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

	t.Run("should parse the canonical form", func(t *testing.T) {
		id, err := kernel.UUIDFromString(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, id.String())
	})

	t.Run("should parse the urn form", func(t *testing.T) {
		id, err := kernel.UUIDFromString("urn:uuid:" + raw)
		require.NoError(t, err)
		assert.Equal(t, raw, id.String())
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := kernel.UUIDFromString("PCO-0001")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should round trip through bytes", func(t *testing.T) {
		original := kernel.NewUUID()
		raw := original.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])
		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("should reject the nil identifier", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(uuid.Nil[:])
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should reject a short slice", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{1, 2, 3})
		require.Error(t, err)
	})
}

func TestUUID_ShortCode(t *testing.T) {
	id, err := kernel.UUIDFromString("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	require.NoError(t, err)

	assert.Equal(t, "6BA7B810", id.ShortCode())
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID
	require.ErrorIs(t, zero.Validate(), kernel.ErrUUIDIsNotConstructed)
}
