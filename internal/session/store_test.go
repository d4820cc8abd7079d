package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/domain"
)

func TestStoreCreateAndGet(t *testing.T) {
	store := NewStore(time.Minute)

	sess, err := store.Create("ACME", domain.AuditModeInternal)
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, "ACME", sess.ClientName)
	assert.Equal(t, domain.AuditModeInternal, sess.Mode)
	assert.NotNil(t, sess.Assessment)

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)
}

func TestStoreCreateValidation(t *testing.T) {
	store := NewStore(time.Minute)

	_, err := store.Create("ACME", domain.AuditMode("externe"))
	assert.ErrorIs(t, err, domain.ErrInvalidAuditMode)

	_, err = store.Create("", domain.AuditModeOfficial)
	require.Error(t, err)
}

func TestStoreGetUnknown(t *testing.T) {
	store := NewStore(time.Minute)

	_, err := store.Get("nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStoreDelete(t *testing.T) {
	store := NewStore(time.Minute)

	sess, err := store.Create("ACME", domain.AuditModeOfficial)
	require.NoError(t, err)

	store.Delete(sess.ID)
	_, err = store.Get(sess.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// Deleting twice is harmless.
	store.Delete(sess.ID)
}

func TestStoreExpiry(t *testing.T) {
	store := NewStore(10 * time.Millisecond)

	sess, err := store.Create("ACME", domain.AuditModeInternal)
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)
	_, err = store.Get(sess.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStoreGetRefreshesTTL(t *testing.T) {
	store := NewStore(50 * time.Millisecond)

	sess, err := store.Create("ACME", domain.AuditModeInternal)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		time.Sleep(30 * time.Millisecond)
		_, err = store.Get(sess.ID)
		require.NoError(t, err)
	}
}
