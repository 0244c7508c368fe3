package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/visualkraft/internal/domain"
)

func TestValidateThemeCompatibility_AllThemes(t *testing.T) {
	session := newFakeSession(nil)
	svc := startedService(t, session, newMemStore())

	report, err := svc.ValidateThemeCompatibility(context.Background(), "/")
	require.NoError(t, err)

	assert.True(t, report.Compatible)
	assert.Empty(t, report.FailedThemes)
	require.Len(t, report.Screenshots, len(domain.DefaultThemes()))
	assert.Equal(t, "mem/root_theme-golden-hour_1772366400000.png", report.Screenshots["golden-hour"])

	// Earlier themes are stripped, so only the last one remains.
	assert.Equal(t, []string{"memory"}, session.lastPage.classes)
}

func TestValidateThemeCompatibility_MissingClassFailsTheme(t *testing.T) {
	b := goodPage()
	b.droppedThemes = []string{"dramatic"}
	svc := startedService(t, newFakeSession(map[string]pageBehavior{testBaseURL + "/": b}), newMemStore())

	report, err := svc.ValidateThemeCompatibility(context.Background(), "/")
	require.NoError(t, err)

	assert.False(t, report.Compatible)
	assert.Equal(t, []string{"dramatic"}, report.FailedThemes)
	assert.Contains(t, report.Screenshots, "dramatic", "screenshot kept for a theme that failed verification")
	assert.Len(t, report.Screenshots, 10)
}

func TestValidateThemeCompatibility_RequiresContext(t *testing.T) {
	svc := newTestService(t, newFakeSession(nil), newMemStore(), testConfig())

	_, err := svc.ValidateThemeCompatibility(context.Background(), "/")
	require.ErrorIs(t, err, domain.ErrContextNotInitialized)
}

func TestValidateThemeCompatibility_LoadFailureFailsEveryTheme(t *testing.T) {
	b := goodPage()
	b.navigateErr = errors.New("net::ERR_NAME_NOT_RESOLVED")
	svc := startedService(t, newFakeSession(map[string]pageBehavior{testBaseURL + "/": b}), newMemStore())

	report, err := svc.ValidateThemeCompatibility(context.Background(), "/")
	require.NoError(t, err)
	assert.False(t, report.Compatible)
	assert.Equal(t, domain.DefaultThemes(), report.FailedThemes)
	assert.Empty(t, report.Screenshots)
}

func TestValidateThemeCompatibility_SessionLostIsFatal(t *testing.T) {
	b := goodPage()
	b.navigateErr = fmt.Errorf("%w: websocket closed", domain.ErrSessionLost)
	svc := startedService(t, newFakeSession(map[string]pageBehavior{testBaseURL + "/": b}), newMemStore())

	_, err := svc.ValidateThemeCompatibility(context.Background(), "/")
	require.ErrorIs(t, err, domain.ErrSessionLost)
}

func TestValidateThemeCompatibility_CustomThemeOrder(t *testing.T) {
	cfg := testConfig()
	cfg.Themes = []string{"dark", "light"}
	session := newFakeSession(nil)
	svc := newTestService(t, session, newMemStore(), cfg)
	require.NoError(t, svc.startSession(context.Background()))
	defer svc.teardown()

	report, err := svc.ValidateThemeCompatibility(context.Background(), "/")
	require.NoError(t, err)
	assert.True(t, report.Compatible)
	assert.Equal(t, []string{"light"}, session.lastPage.classes)
}

func TestValidateThemeCompatibility_StripsThemeClassShippedOnBody(t *testing.T) {
	b := goodPage()
	b.snapshot.BodyClasses = []string{"dark", "layout-wide"}
	cfg := testConfig()
	cfg.Themes = []string{"light"}
	session := newFakeSession(map[string]pageBehavior{testBaseURL + "/": b})
	svc := newTestService(t, session, newMemStore(), cfg)
	require.NoError(t, svc.startSession(context.Background()))
	defer svc.teardown()

	report, err := svc.ValidateThemeCompatibility(context.Background(), "/")
	require.NoError(t, err)
	assert.True(t, report.Compatible)
	assert.Equal(t, []string{"layout-wide", "light"}, session.lastPage.themed["light"])
}

func TestValidateThemeCompatibility_EachCaptureCarriesOneTheme(t *testing.T) {
	session := newFakeSession(nil)
	svc := startedService(t, session, newMemStore())

	_, err := svc.ValidateThemeCompatibility(context.Background(), "/")
	require.NoError(t, err)
	for _, theme := range domain.DefaultThemes() {
		assert.Equal(t, []string{theme}, session.lastPage.themed[theme], theme)
	}
}

func TestCheckThemes_ManagesItsOwnSession(t *testing.T) {
	session := newFakeSession(nil)
	svc := newTestService(t, session, newMemStore(), testConfig())

	report, err := svc.CheckThemes(context.Background(), "/")
	require.NoError(t, err)
	assert.True(t, report.Compatible)

	opened, closed, teardowns := session.counts()
	assert.Equal(t, 1, opened)
	assert.Equal(t, 1, closed)
	assert.Equal(t, 1, teardowns)
}
