// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeKeyRoundTrip(t *testing.T) {
	kb := NewKeyBuilder("")

	encoded, err := kb.CompoundKeyEncoded("meeting-1", "participant-1")
	require.NoError(t, err)
	assert.NotContains(t, encoded, "/")

	decoded, err := kb.DecodeKey(encoded)
	require.NoError(t, err)
	assert.Equal(t, "meeting-1/participant-1", decoded)
}

func TestCompoundKeyEncodedWithPrefix(t *testing.T) {
	kb := NewKeyBuilder("participants")

	encoded, err := kb.CompoundKeyEncoded("meeting-1", "participant-1")
	require.NoError(t, err)

	decoded, err := kb.DecodeKey(encoded)
	require.NoError(t, err)
	assert.Equal(t, "participants/meeting-1/participant-1", decoded)
}

func TestEncodeKeyPreservesWildcards(t *testing.T) {
	kb := NewKeyBuilder("")

	encoded, err := kb.EncodeKey("meeting-1/*")
	require.NoError(t, err)

	decoded, err := kb.DecodeKey(encoded)
	require.Error(t, err, "wildcard segments are not base64")
	assert.Empty(t, decoded)
}

func TestDecodeKeyRejectsGarbage(t *testing.T) {
	kb := NewKeyBuilder("")
	_, err := kb.DecodeKey("not base64!!")
	assert.Error(t, err)
}
