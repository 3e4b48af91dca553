package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/appraisal-annotator/internal/adapter/memstore"
	"github.com/heartmarshall/appraisal-annotator/internal/domain"
)

type recordingFile struct {
	bytes.Buffer
	closeErr error
	closed   bool
}

func (f *recordingFile) Close() error {
	f.closed = true
	return f.closeErr
}

func seededStore(t *testing.T) *memstore.Store {
	t.Helper()
	s := memstore.New()
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, "alice"))
	require.NoError(t, s.PutAnnotation(ctx, "alice", "e1.json", domain.Document{"entry_id": "e1"}))
	return s
}

func TestWriteExport(t *testing.T) {
	t.Parallel()

	out := &recordingFile{}
	users, records, err := writeExport(context.Background(), seededStore(t), out)
	require.NoError(t, err)

	assert.Equal(t, 1, users)
	assert.Equal(t, 1, records)
	assert.True(t, out.closed)
	assert.JSONEq(t, `{"alice":{"e1.json":{"entry_id":"e1"}}}`, out.String())
}

func TestWriteExport_CloseError(t *testing.T) {
	t.Parallel()

	diskFull := errors.New("no space left on device")
	out := &recordingFile{closeErr: diskFull}

	users, records, err := writeExport(context.Background(), seededStore(t), out)
	require.ErrorIs(t, err, diskFull)
	assert.Zero(t, users)
	assert.Zero(t, records)
}
