package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statementlens/pnlextract/internal/identify"
	"github.com/statementlens/pnlextract/internal/notes"
	"github.com/statementlens/pnlextract/internal/ocrsvc"
	"github.com/statementlens/pnlextract/internal/tables"
	"github.com/statementlens/pnlextract/internal/validate"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPipeline() *Pipeline {
	logger := testLogger()
	layout := tables.NewLayoutEngine(nil, logger)
	return New(
		Limits{MaxFileSize: 100 << 20, MaxPages: 500},
		identify.New(nil, logger),
		tables.NewExtractor(nil, layout, logger),
		notes.NewExtractor(nil, layout, logger),
		ocrsvc.Config{},
		logger,
	)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{userDataErr("open", "bad file"), KindUserData},
		{configErr("ocr", "no converter"), KindConfiguration},
		{unexpectedErr("ocr", errors.New("boom")), KindUnexpected},
		{fmt.Errorf("wrapped: %w", userDataErr("extract", "no items")), KindUserData},
		{errors.New("plain"), KindUnexpected},
		{nil, KindUnexpected},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KindOf(tt.err))
	}
}

func TestErrorMessageNamesStage(t *testing.T) {
	err := userDataErr("identify", "no profit and loss page found in %s document", "text")
	assert.Equal(t, "identify: no profit and loss page found in text document", err.Error())
	assert.NotNil(t, errors.Unwrap(err))
}

func TestRunMissingFile(t *testing.T) {
	p := testPipeline()
	res, err := p.Run(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"))
	require.Error(t, err)
	assert.Equal(t, KindUserData, KindOf(err))
	require.NotNil(t, res)
	assert.Equal(t, -1, res.NotePage)
}

func TestMethodList(t *testing.T) {
	assert.Equal(t, "none", methodList(nil))
	assert.Equal(t, "title, scoring",
		methodList([]identify.Method{identify.MethodTitle, identify.MethodScoring}))
	assert.Equal(t, "model, title, scoring",
		methodList([]identify.Method{identify.MethodModel, identify.MethodTitle, identify.MethodScoring}))
}

func TestChecksPassed(t *testing.T) {
	r := &Result{}
	assert.True(t, r.ChecksPassed())

	r.Checks = []validate.Check{{Name: "a", OK: true}, {Name: "b", OK: false}}
	assert.False(t, r.ChecksPassed())

	r.Checks[1].OK = true
	assert.True(t, r.ChecksPassed())
}

func TestResultWarn(t *testing.T) {
	r := &Result{}
	r.warn("first")
	r.warn("second")
	assert.Equal(t, []string{"first", "second"}, r.Warnings)
}

func TestQueueProcessesAllJobs(t *testing.T) {
	var mu sync.Mutex
	var kinds []Kind

	q := NewQueue(testPipeline(), func(job Job, res *Result, err error) {
		mu.Lock()
		defer mu.Unlock()
		kinds = append(kinds, KindOf(err))
	}, testLogger(), WithWorkers(2), WithQueueSize(8))

	dir := t.TempDir()
	for i := 0; i < 5; i++ {
		q.Enqueue(Job{Path: filepath.Join(dir, fmt.Sprintf("missing-%d.pdf", i))})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, kinds, 5)
	for _, k := range kinds {
		assert.Equal(t, KindUserData, k)
	}
}

func TestQueueEnqueueAfterShutdown(t *testing.T) {
	called := false
	q := NewQueue(testPipeline(), func(Job, *Result, error) {
		called = true
	}, testLogger(), WithWorkers(1))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	q.Enqueue(Job{Path: "late.pdf"})
	assert.False(t, called)

	// second shutdown is a no-op
	q.Shutdown(ctx)
}
