package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/visualkraft/internal/domain"
)

func startedService(t *testing.T, session *fakeSession, store *memStore) *ValidationService {
	t.Helper()
	svc := newTestService(t, session, store, testConfig())
	require.NoError(t, svc.startSession(context.Background()))
	t.Cleanup(svc.teardown)
	return svc
}

func viewport(t *testing.T, name string) domain.Viewport {
	t.Helper()
	vp, ok := domain.FindViewport(domain.DefaultViewports(), name)
	require.True(t, ok)
	return vp
}

func TestCaptureAndAnalyze_WritesScreenshot(t *testing.T) {
	store := newMemStore()
	svc := startedService(t, newFakeSession(nil), store)

	shot, err := svc.CaptureAndAnalyze(context.Background(), "/", viewport(t, "desktop"))
	require.NoError(t, err)

	assert.Equal(t, "mem/root_desktop_1772366400000.png", shot.FilePath)
	assert.Equal(t, "/", shot.URL)
	assert.Equal(t, "desktop", shot.Viewport.Name)
	assert.NotNil(t, shot.Errors)
	assert.NotNil(t, shot.Warnings)
	assert.Empty(t, shot.Warnings)
	assert.Equal(t, 1, store.count())
}

func TestCaptureAndAnalyze_MobileOverflow(t *testing.T) {
	wide := goodPage()
	wide.scrollWidth = 500
	svc := startedService(t, newFakeSession(map[string]pageBehavior{testBaseURL + "/wide": wide}), newMemStore())

	shot, err := svc.CaptureAndAnalyze(context.Background(), "/wide", viewport(t, "mobile"))
	require.NoError(t, err)
	assert.Equal(t, []string{domain.WarningHorizontalScroll}, shot.Warnings)
}

func TestCaptureAndAnalyze_OverflowIgnoredOffMobile(t *testing.T) {
	wide := goodPage()
	wide.scrollWidth = 5000
	svc := startedService(t, newFakeSession(map[string]pageBehavior{testBaseURL + "/wide": wide}), newMemStore())

	shot, err := svc.CaptureAndAnalyze(context.Background(), "/wide", viewport(t, "tablet"))
	require.NoError(t, err)
	assert.Empty(t, shot.Warnings)
}

func TestCaptureAndAnalyze_OverflowCheckFailureIsWarning(t *testing.T) {
	b := goodPage()
	b.scrollErr = errors.New("eval failed")
	svc := startedService(t, newFakeSession(map[string]pageBehavior{testBaseURL + "/": b}), newMemStore())

	shot, err := svc.CaptureAndAnalyze(context.Background(), "/", viewport(t, "mobile-sm"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Overflow check failed: eval failed"}, shot.Warnings)
	assert.NotEmpty(t, shot.FilePath)
}

func TestCaptureAndAnalyze_ConsoleErrors(t *testing.T) {
	b := goodPage()
	b.consoleErrors = []string{"Uncaught TypeError: x is undefined"}
	svc := startedService(t, newFakeSession(map[string]pageBehavior{testBaseURL + "/": b}), newMemStore())

	shot, err := svc.CaptureAndAnalyze(context.Background(), "/", viewport(t, "desktop"))
	require.NoError(t, err)
	assert.Equal(t, b.consoleErrors, shot.Errors)
}

func TestCaptureAndAnalyze_UnknownViewport(t *testing.T) {
	session := newFakeSession(nil)
	svc := startedService(t, session, newMemStore())

	_, err := svc.CaptureAndAnalyze(context.Background(), "/", domain.Viewport{Name: "watch", Width: 200, Height: 200, DeviceClass: domain.DeviceMobile})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"watch" is not configured`)

	opened, _, _ := session.counts()
	assert.Zero(t, opened)
}

func TestCaptureAndAnalyze_RequiresContext(t *testing.T) {
	svc := newTestService(t, newFakeSession(nil), newMemStore(), testConfig())

	_, err := svc.CaptureAndAnalyze(context.Background(), "/", viewport(t, "desktop"))
	require.ErrorIs(t, err, domain.ErrContextNotInitialized)
}

func TestCaptureAndAnalyze_SaveFailure(t *testing.T) {
	store := newMemStore()
	store.saveErr = errors.New("disk full")
	session := newFakeSession(nil)
	svc := startedService(t, session, store)

	_, err := svc.CaptureAndAnalyze(context.Background(), "/", viewport(t, "desktop"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving screenshot: disk full")

	opened, closed, _ := session.counts()
	assert.Equal(t, opened, closed)
}
