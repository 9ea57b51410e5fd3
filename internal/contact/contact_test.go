package contact

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/mailer"
)

var filled = Form{
	Name:    "Ada Lovelace",
	Email:   "ada@example.com",
	Subject: "Collaboration",
	Message: "Let's build an engine.",
}

type fakeSender struct {
	sent []mailer.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, m mailer.Message) error {
	f.sent = append(f.sent, m)
	return f.err
}

func TestSubmitSuccessClearsForm(t *testing.T) {
	sender := &fakeSender{}
	svc := NewService(sender, "owner@example.com", 0, 0)

	st := svc.Submit(context.Background(), "visitor", filled)
	assert.True(t, st.Sent)
	assert.Empty(t, st.Error)
	assert.Equal(t, Form{Name: "", Email: "", Subject: "", Message: ""}, st.Form)

	require.Len(t, sender.sent, 1)
	m := sender.sent[0]
	assert.Equal(t, "owner@example.com", m.To)
	assert.Equal(t, "Portfolio Contact: Collaboration", m.Subject)
	assert.Equal(t, "ada@example.com", m.ReplyTo)
	assert.Contains(t, m.Body, "Name: Ada Lovelace\nEmail: ada@example.com\nSubject: Collaboration\n\nMessage:\nLet's build an engine.")
	assert.Equal(t, Stats{Sent: 1}, svc.Stats())
}

func TestSubmitFailureKeepsForm(t *testing.T) {
	sender := &fakeSender{err: errors.New("relay down")}
	svc := NewService(sender, "owner@example.com", 0, 0)

	st := svc.Submit(context.Background(), "visitor", filled)
	assert.False(t, st.Sent)
	assert.NotEmpty(t, st.Error)
	assert.Equal(t, filled, st.Form)
	assert.Len(t, sender.sent, 1, "no automatic retry")
	assert.Equal(t, Stats{Failed: 1}, svc.Stats())
}

func TestSubmitThrottlesPerVisitor(t *testing.T) {
	sender := &fakeSender{}
	svc := NewService(sender, "owner@example.com", 1, 2)

	assert.True(t, svc.Submit(context.Background(), "a", filled).Sent)
	assert.True(t, svc.Submit(context.Background(), "a", filled).Sent)

	st := svc.Submit(context.Background(), "a", filled)
	assert.False(t, st.Sent)
	assert.Equal(t, filled, st.Form)

	assert.True(t, svc.Submit(context.Background(), "b", filled).Sent)
	assert.Len(t, sender.sent, 3)
	assert.Equal(t, int64(1), svc.Stats().Throttled)
}

func TestComposeForwardsTextUnchanged(t *testing.T) {
	svc := NewService(&fakeSender{}, "owner@example.com", 0, 0)
	m := svc.Compose(Form{
		Name:    "<b>Bob</b>",
		Email:   "bob@example.com",
		Subject: "Vec<T> question",
		Message: "if x<y and a<b then swap, see <https://example.com/docs>\nTom & Jerry's <i>show</i>",
	})
	assert.Equal(t, "Portfolio Contact: Vec<T> question", m.Subject)
	assert.Contains(t, m.Body, "Name: <b>Bob</b>\n")
	assert.Contains(t, m.Body, "Message:\nif x<y and a<b then swap, see <https://example.com/docs>\nTom & Jerry's <i>show</i>\n")
}

func TestLimitersStayBounded(t *testing.T) {
	svc := NewService(&fakeSender{}, "owner@example.com", 1, 1)
	svc.maxVisitors = 3

	for _, v := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		assert.True(t, svc.Submit(context.Background(), v, filled).Sent)
		assert.LessOrEqual(t, len(svc.limiters), 3)
	}
	// a fresh limiter after the reset lets "a" through again
	assert.True(t, svc.Submit(context.Background(), "a", filled).Sent)
}
