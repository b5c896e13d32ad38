package telegram

import (
	"context"
	"errors"
	"testing"

	"github.com/oclaw/supportreq/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, subject, message string) error {
	args := m.Called(ctx, subject, message)
	return args.Error(0)
}

func TestTelegramNotifierSendsMarkdown(t *testing.T) {
	transport := new(mockSender)
	transport.On("Send", mock.Anything, "supportreq update", mock.MatchedBy(func(msg string) bool {
		return assert.Contains(t, msg, "*Error*") &&
			assert.Contains(t, msg, "Validation error") &&
			assert.Contains(t, msg, "*r-9*")
	})).Return(nil).Once()

	notifier := &telegramNotifier{transport: transport}
	err := notifier.Notify(context.Background(), &types.Notification{
		RecordID: "r-9",
		Title:    "Error",
		Message:  "Validation error",
		Variant:  types.VariantError,
	})

	assert.NoError(t, err)
	transport.AssertExpectations(t)
}

func TestTelegramNotifierPropagatesTransportError(t *testing.T) {
	transport := new(mockSender)
	transport.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bot blocked"))

	notifier := &telegramNotifier{transport: transport}
	err := notifier.Notify(context.Background(), &types.Notification{Variant: types.VariantSuccess})
	assert.EqualError(t, err, "bot blocked")
}

func TestFormatMessageEscapesMarkdown(t *testing.T) {
	msg := formatMessage(&types.Notification{
		RecordID: "case_7",
		Title:    "Error",
		Message:  "field *subject* is invalid: use `snake_case` [docs]",
		Variant:  types.VariantError,
	})

	assert.Contains(t, msg, "field \\*subject\\* is invalid: use \\`snake\\_case\\` \\[docs]")
	assert.Contains(t, msg, "- record: *case\\_7*")
}
