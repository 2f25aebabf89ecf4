package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"lesson_planning_bot/internal/domain/planning"
	"lesson_planning_bot/internal/domain/submission"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

type fakeUploader struct {
	mu     sync.Mutex
	calls  []string
	failOn string
}

func (f *fakeUploader) ObjectName(_ string, period planning.PeriodKey, week planning.WeekKey, _ time.Time, original string) string {
	return fmt.Sprintf("%s/%s/%s", period, week, original)
}

func (f *fakeUploader) Upload(_ context.Context, objectName string, file planning.FileRef) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, objectName)
	if f.failOn != "" && file.Name == f.failOn {
		return "", errors.New("Falhou: Forbidden")
	}
	return "https://cdn.test/" + objectName, nil
}

func (f *fakeUploader) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeNotifier struct {
	mu         sync.Mutex
	messages   []string
	failOnCall int
	started    chan struct{}
	release    chan struct{}
}

func (f *fakeNotifier) Send(_ context.Context, message string) error {
	f.mu.Lock()
	f.messages = append(f.messages, message)
	n := len(f.messages)
	fail := f.failOnCall
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if n == fail {
		return errors.New("canal indisponível")
	}
	return nil
}

func (f *fakeNotifier) Messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

// periodOf returns the "Mês" line of a composed message.
func periodOf(message string) string {
	for _, line := range strings.Split(message, "\n") {
		if strings.HasPrefix(line, "🗓️ **Mês:** ") {
			return strings.TrimPrefix(line, "🗓️ **Mês:** ")
		}
	}
	return ""
}

type memoryRecorder struct {
	mu       sync.Mutex
	attempts []*submission.Attempt
}

func (m *memoryRecorder) Record(_ context.Context, a *submission.Attempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, a)
	return nil
}

type stubSource string

func (s stubSource) Open(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(s))), nil
}
