package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/layfhaker/bezneg/internal/models"
	"github.com/layfhaker/bezneg/internal/parser"
)

type fakeMessageStore struct {
	msgs        map[string]*models.ScopedMessage
	failCreates int
	creates     int
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{msgs: make(map[string]*models.ScopedMessage)}
}

func (s *fakeMessageStore) Create(msg *models.ScopedMessage) error {
	s.creates++
	if s.failCreates > 0 {
		s.failCreates--
		return gorm.ErrDuplicatedKey
	}
	if _, exists := s.msgs[msg.Ref]; exists {
		return gorm.ErrDuplicatedKey
	}
	s.msgs[msg.Ref] = msg
	return nil
}

func (s *fakeMessageStore) GetByRef(ref string) (*models.ScopedMessage, error) {
	return s.msgs[ref], nil
}

func (s *fakeMessageStore) DeleteOlderThan(cutoff time.Time) (int64, error) {
	var removed int64
	for ref, msg := range s.msgs {
		if msg.CreatedAt.Before(cutoff) {
			delete(s.msgs, ref)
			removed++
		}
	}
	return removed, nil
}

type fakeRejectStore struct {
	settings map[int64]*models.RejectSetting
}

func newFakeRejectStore() *fakeRejectStore {
	return &fakeRejectStore{settings: make(map[int64]*models.RejectSetting)}
}

func (s *fakeRejectStore) GetSetting(userID int64) (*models.RejectSetting, error) {
	return s.settings[userID], nil
}

func (s *fakeRejectStore) UpsertSetting(userID int64, text *string) error {
	s.settings[userID] = &models.RejectSetting{UserID: userID, RejectMessage: text}
	return nil
}

func setupFakes(t *testing.T) (*fakeMessageStore, *fakeRejectStore) {
	t.Helper()
	msgStore := newFakeMessageStore()
	rejStore := newFakeRejectStore()
	messageStore = msgStore
	rejectStore = rejStore
	rejectCache = models.NewRejectCache()
	t.Cleanup(func() {
		messageStore = nil
		rejectStore = nil
		rejectCache = models.NewRejectCache()
	})
	return msgStore, rejStore
}

func TestCreateScopedMessage_RoundTrip(t *testing.T) {
	setupFakes(t)

	msg, err := CreateScopedMessage(42, "Пикник в субботу @vasya @PeTro")
	require.NoError(t, err)
	require.NotEmpty(t, msg.Ref)

	got, err := GetScopedMessage(msg.Ref)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, int64(42), got.SenderID)
	assert.Equal(t, "Пикник в субботу", got.Body)
	assert.Equal(t, []string{"vasya", "petro"}, got.ExcludedHandles())
}

func TestCreateScopedMessage_ParseErrorsPassThrough(t *testing.T) {
	setupFakes(t)

	_, err := CreateScopedMessage(42, "no handles here")
	assert.ErrorIs(t, err, parser.ErrNoExclusions)

	_, err = CreateScopedMessage(42, "@vasya @petro")
	assert.ErrorIs(t, err, parser.ErrEmptyBody)
}

func TestCreateScopedMessage_RetriesOnCollision(t *testing.T) {
	msgStore, _ := setupFakes(t)
	msgStore.failCreates = 1

	msg, err := CreateScopedMessage(42, "see you soon @vasya")
	require.NoError(t, err)
	assert.Equal(t, 2, msgStore.creates)

	got, err := GetScopedMessage(msg.Ref)
	require.NoError(t, err)
	assert.Equal(t, "see you soon", got.Body)
}

func TestCreateScopedMessage_GivesUpAfterRepeatedCollisions(t *testing.T) {
	msgStore, _ := setupFakes(t)
	msgStore.failCreates = maxRefAttempts

	_, err := CreateScopedMessage(42, "see you soon @vasya")
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestCreateScopedMessage_StorageUnavailable(t *testing.T) {
	setupFakes(t)
	messageStore = nil

	_, err := CreateScopedMessage(42, "see you soon @vasya")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestReveal_UnknownReferenceExpires(t *testing.T) {
	setupFakes(t)

	result, err := Reveal("deadbeef", "vasya")
	require.NoError(t, err)
	assert.Equal(t, RevealExpired, result.Outcome)
	assert.Empty(t, result.Text)
}

func TestReveal_GrantsAndDenies(t *testing.T) {
	setupFakes(t)

	msg, err := CreateScopedMessage(42, "Сюрприз для Васи @vasya")
	require.NoError(t, err)

	denied, err := Reveal(msg.Ref, "vasya")
	require.NoError(t, err)
	assert.Equal(t, RevealDenied, denied.Outcome)
	assert.Equal(t, models.DefaultRejectMessage, denied.Text)

	granted, err := Reveal(msg.Ref, "petro")
	require.NoError(t, err)
	assert.Equal(t, RevealGranted, granted.Outcome)
	assert.Equal(t, "Сюрприз для Васи", granted.Text)
}

func TestReveal_ExclusionIsCaseInsensitive(t *testing.T) {
	setupFakes(t)

	msg, err := CreateScopedMessage(42, "secret plans @vasya")
	require.NoError(t, err)

	result, err := Reveal(msg.Ref, "VaSyA")
	require.NoError(t, err)
	assert.Equal(t, RevealDenied, result.Outcome)
}

func TestReveal_ViewerWithoutUsernameIsNeverExcluded(t *testing.T) {
	setupFakes(t)

	msg, err := CreateScopedMessage(42, "secret plans @vasya")
	require.NoError(t, err)

	result, err := Reveal(msg.Ref, "")
	require.NoError(t, err)
	assert.Equal(t, RevealGranted, result.Outcome)
	assert.Equal(t, "secret plans", result.Text)
}

func TestReveal_IsRepeatable(t *testing.T) {
	setupFakes(t)

	msg, err := CreateScopedMessage(42, "movie night @vasya")
	require.NoError(t, err)

	first, err := Reveal(msg.Ref, "petro")
	require.NoError(t, err)
	second, err := Reveal(msg.Ref, "petro")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestReveal_DeniedTextTracksSenderSetting(t *testing.T) {
	setupFakes(t)

	msg, err := CreateScopedMessage(42, "movie night @vasya")
	require.NoError(t, err)

	before, err := Reveal(msg.Ref, "vasya")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultRejectMessage, before.Text)

	require.NoError(t, SetRejectMessage(42, "Not for you!"))

	after, err := Reveal(msg.Ref, "vasya")
	require.NoError(t, err)
	assert.Equal(t, RevealDenied, after.Outcome)
	assert.Equal(t, "Not for you!", after.Text)

	// The earlier result is a value, unaffected by the change
	assert.Equal(t, models.DefaultRejectMessage, before.Text)
}

func TestSetRejectMessage_TooLongKeepsPriorValue(t *testing.T) {
	setupFakes(t)

	require.NoError(t, SetRejectMessage(42, "short and fine"))

	long := make([]rune, models.MaxRejectMessageLength+1)
	for i := range long {
		long[i] = 'я'
	}
	err := SetRejectMessage(42, string(long))
	assert.ErrorIs(t, err, ErrRejectTooLong)

	assert.Equal(t, "short and fine", GetRejectMessage(42))
}

func TestSetRejectMessage_ExactBoundAccepted(t *testing.T) {
	setupFakes(t)

	exact := make([]rune, models.MaxRejectMessageLength)
	for i := range exact {
		exact[i] = 'я'
	}
	require.NoError(t, SetRejectMessage(42, string(exact)))
	assert.Equal(t, string(exact), GetRejectMessage(42))
}

func TestResetRejectMessage_RestoresDefault(t *testing.T) {
	_, rejStore := setupFakes(t)

	require.NoError(t, SetRejectMessage(42, "go away"))
	assert.Equal(t, "go away", GetRejectMessage(42))

	require.NoError(t, ResetRejectMessage(42))
	assert.Equal(t, models.DefaultRejectMessage, GetRejectMessage(42))

	// Reset keeps the row with a NULL text instead of deleting it
	setting := rejStore.settings[42]
	require.NotNil(t, setting)
	assert.Nil(t, setting.RejectMessage)
}

func TestGetRejectMessage_DefaultWithoutStore(t *testing.T) {
	setupFakes(t)
	rejectStore = nil

	assert.Equal(t, models.DefaultRejectMessage, GetRejectMessage(42))
}

func TestScenario_ExcludedViewerGetsRejectText(t *testing.T) {
	setupFakes(t)

	// alice composes an invitation that vasiliy must not see
	const alice = int64(1001)
	msg, err := CreateScopedMessage(alice, "Го в кино? @vasiliy")
	require.NoError(t, err)
	assert.Equal(t, "Го в кино?", msg.Body)
	assert.Equal(t, []string{"vasiliy"}, msg.ExcludedHandles())

	// vasiliy presses the button and gets the default reject text
	denied, err := Reveal(msg.Ref, "vasiliy")
	require.NoError(t, err)
	assert.Equal(t, RevealDenied, denied.Outcome)
	assert.Equal(t, "🚫 Это сообщение не для тебя", denied.Text)

	// carol is not excluded and sees the real body
	granted, err := Reveal(msg.Ref, "carol")
	require.NoError(t, err)
	assert.Equal(t, RevealGranted, granted.Outcome)
	assert.Equal(t, "Го в кино?", granted.Text)

	// alice customizes her reject text; vasiliy now sees the new one
	require.NoError(t, SetRejectMessage(alice, "Not for you!"))
	denied, err = Reveal(msg.Ref, "vasiliy")
	require.NoError(t, err)
	assert.Equal(t, "Not for you!", denied.Text)
}

func TestRetention_DeleteOlderThan(t *testing.T) {
	msgStore, _ := setupFakes(t)

	old, err := CreateScopedMessage(42, "stale news @vasya")
	require.NoError(t, err)
	msgStore.msgs[old.Ref].CreatedAt = time.Now().Add(-48 * time.Hour)

	fresh, err := CreateScopedMessage(42, "fresh news @vasya")
	require.NoError(t, err)

	removed, err := msgStore.DeleteOlderThan(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	result, err := Reveal(old.Ref, "petro")
	require.NoError(t, err)
	assert.Equal(t, RevealExpired, result.Outcome)

	result, err = Reveal(fresh.Ref, "petro")
	require.NoError(t, err)
	assert.Equal(t, RevealGranted, result.Outcome)
}
