package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mushroom-doctor/internal/domain/entity"
	"mushroom-doctor/internal/i18n"
)

type failingPrefs struct{}

func (failingPrefs) Get(ctx context.Context, scope, name string) (string, bool, error) {
	return "", false, errors.New("storage unavailable")
}

func (failingPrefs) Set(ctx context.Context, scope, name, value string) error {
	return errors.New("storage unavailable")
}

func TestLanguageService_LoadDefaults(t *testing.T) {
	env := newTestEnv(nil)
	ctx := context.Background()

	require.Equal(t, entity.LanguageEnglish, env.language.Load(ctx, "nobody"))

	require.NoError(t, env.prefs.Set(ctx, "odd", entity.PreferenceKeyLanguage, "klingon"))
	require.Equal(t, entity.LanguageEnglish, env.language.Load(ctx, "odd"))

	require.NoError(t, env.prefs.Set(ctx, "ilo-user", entity.PreferenceKeyLanguage, "ilo"))
	require.Equal(t, entity.LanguageIlocano, env.language.Load(ctx, "ilo-user"))
}

func TestLanguageService_SwitchRelabelsEverything(t *testing.T) {
	env := newTestEnv(nil)
	session := env.session(t, "chat-1")

	require.NoError(t, env.language.Switch(context.Background(), session, "ilo"))

	view := env.sessions.View(session)
	tbl := i18n.For(entity.LanguageIlocano)
	require.Equal(t, entity.LanguageIlocano, view.Language)
	require.Equal(t, tbl.Results, view.ResultsTitle)
	for _, l := range entity.StaticLabels() {
		require.Equal(t, tbl.Label(l), view.Labels[l], l)
	}

	stored, ok, err := env.prefs.Get(context.Background(), "chat-1", entity.PreferenceKeyLanguage)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "ilo", stored)
}

func TestLanguageService_RestoredOnNextLoad(t *testing.T) {
	env := newTestEnv(nil)
	session := env.session(t, "chat-1")
	require.NoError(t, env.language.Switch(context.Background(), session, "fil"))

	require.NoError(t, env.sessions.End(context.Background(), "chat-1"))

	reloaded := env.session(t, "chat-1")
	require.NotSame(t, session, reloaded)
	view := env.sessions.View(reloaded)
	require.Equal(t, entity.LanguageFilipino, view.Language)
	require.Equal(t, i18n.For(entity.LanguageFilipino).PredictButton, view.Labels[entity.LabelPredict])
}

func TestLanguageService_UnknownCodeIsIgnored(t *testing.T) {
	env := newTestEnv(nil)
	session := env.session(t, "chat-1")
	before := env.sessions.View(session)

	err := env.language.Switch(context.Background(), session, "de")
	require.ErrorIs(t, err, ErrUnknownLanguage)

	require.Equal(t, before, env.sessions.View(session))
	_, ok, err := env.prefs.Get(context.Background(), "chat-1", entity.PreferenceKeyLanguage)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLanguageService_SwitchKeepsRenderedCards(t *testing.T) {
	env := newTestEnv(nil)
	session := env.session(t, "chat-1")

	card := entity.ResultCard{Class: "Wilt", Text: i18n.For(entity.LanguageEnglish).Assessment("Wilt", 0.92)}
	session.Lock()
	session.View.Cards = []entity.ResultCard{card}
	session.View.ResultsVisible = true
	session.Unlock()

	require.NoError(t, env.language.Switch(context.Background(), session, "fil"))

	view := env.sessions.View(session)
	require.Equal(t, []entity.ResultCard{card}, view.Cards)
	require.Equal(t, i18n.For(entity.LanguageFilipino).Results, view.ResultsTitle)
}

func TestLanguageService_SwitchSurvivesStorageFailure(t *testing.T) {
	svc := NewLanguageService(failingPrefs{}, zap.NewNop())
	session := entity.NewSession("chat-1", svc.Load(context.Background(), "chat-1"))
	require.Equal(t, entity.LanguageEnglish, session.Language)

	require.NoError(t, svc.Switch(context.Background(), session, "fil"))
	require.Equal(t, entity.LanguageFilipino, session.View.Language)
}
