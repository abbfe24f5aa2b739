package contactform_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotx/contactrelay/pkg/contactform"
	"github.com/iotx/contactrelay/svc/contact"
)

func fill(t *testing.T, f *contactform.Form) {
	t.Helper()
	require.NoError(t, f.Set(contact.FieldName, "Jane"))
	require.NoError(t, f.Set(contact.FieldEmail, "jane@example.com"))
	require.NoError(t, f.Set(contact.FieldMessage, "Hello"))
}

func quiet() contactform.FormOption {
	return contactform.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestForm_Delivered(t *testing.T) {
	t.Parallel()

	r, srv := newRelay(t, http.StatusOK, `{"success":true,"message":"ok"}`)
	client, err := contactform.NewClient(srv.URL)
	require.NoError(t, err)

	form := contactform.NewForm(client, contactform.WithResetDelay(50*time.Millisecond), quiet())
	t.Cleanup(form.Close)
	fill(t, form)

	res, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, contactform.StatusDelivered, res.Status)
	assert.EqualValues(t, 1, r.posts.Load())

	st := form.State()
	assert.Equal(t, contactform.PhaseSubmitted, st.Phase)
	assert.Equal(t, "Jane", st.Request.Name, "fields stay until reset")
	require.NotNil(t, st.Last)

	_, err = form.Submit(context.Background())
	assert.ErrorIs(t, err, contactform.ErrAwaitingReset)

	assert.Eventually(t, func() bool {
		st := form.State()
		return st.Phase == contactform.PhaseIdle && st.Request == (contact.ContactRequest{}) && st.Last == nil
	}, time.Second, 10*time.Millisecond)
}

func TestForm_SimulatedWhenRelayDown(t *testing.T) {
	t.Parallel()

	r, srv := newRelay(t, http.StatusOK, `{"success":true}`)
	r.healthy.Store(false)
	client, err := contactform.NewClient(srv.URL)
	require.NoError(t, err)

	form := contactform.NewForm(client,
		contactform.WithSimulatedDelay(30*time.Millisecond),
		contactform.WithResetDelay(50*time.Millisecond),
		quiet(),
	)
	t.Cleanup(form.Close)
	fill(t, form)

	start := time.Now()
	res, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, contactform.StatusSimulatedDelivered, res.Status)
	assert.True(t, res.Submitted())
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.Zero(t, r.posts.Load(), "payload is never sent")
	assert.Equal(t, contactform.PhaseSubmitted, form.State().Phase)

	assert.Eventually(t, func() bool { return form.State().Phase == contactform.PhaseIdle }, time.Second, 10*time.Millisecond)
}

func TestForm_SimulationDisabled(t *testing.T) {
	t.Parallel()

	r, srv := newRelay(t, http.StatusOK, `{"success":true}`)
	r.healthy.Store(false)
	client, err := contactform.NewClient(srv.URL)
	require.NoError(t, err)

	form := contactform.NewForm(client, contactform.WithSimulatedFallback(false), quiet())
	fill(t, form)

	res, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, contactform.StatusFailed, res.Status)
	assert.Equal(t, contactform.PhaseFailed, form.State().Phase)
	assert.NotEmpty(t, form.State().Error)
}

func TestForm_RelayFailureKeepsFields(t *testing.T) {
	t.Parallel()

	_, srv := newRelay(t, http.StatusInternalServerError, `{"success":false,"message":"Failed to send your message. Please try again later."}`)
	client, err := contactform.NewClient(srv.URL)
	require.NoError(t, err)

	form := contactform.NewForm(client, quiet())
	fill(t, form)

	res, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, contactform.StatusFailed, res.Status)

	st := form.State()
	assert.Equal(t, contactform.PhaseFailed, st.Phase)
	assert.Equal(t, "Failed to send your message. Please try again later.", st.Error)
	assert.Equal(t, "Jane", st.Request.Name)
	assert.False(t, st.Busy())

	// a failed form can be resubmitted
	_, err = form.Submit(context.Background())
	assert.NoError(t, err)
}

func TestForm_ClientSideValidation(t *testing.T) {
	t.Parallel()

	r, srv := newRelay(t, http.StatusOK, `{"success":true}`)
	client, err := contactform.NewClient(srv.URL)
	require.NoError(t, err)

	form := contactform.NewForm(client, quiet())
	require.NoError(t, form.Set(contact.FieldName, "Jane"))
	require.NoError(t, form.Set(contact.FieldEmail, "not-an-email"))
	require.NoError(t, form.Set(contact.FieldMessage, "Hi"))

	res, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, contactform.StatusFailed, res.Status)
	assert.Equal(t, "Invalid email format", res.Reason)
	assert.Zero(t, r.posts.Load())

	assert.ErrorIs(t, form.Set("fax", "1"), contactform.ErrUnknownField)
}

func TestForm_InFlightGuard(t *testing.T) {
	t.Parallel()

	r, srv := newRelay(t, http.StatusOK, `{"success":true}`)
	r.delay.Store(int64(100 * time.Millisecond))
	client, err := contactform.NewClient(srv.URL)
	require.NoError(t, err)

	var mu sync.Mutex
	var phases []contactform.Phase
	form := contactform.NewModalForm(client, quiet(), contactform.WithOnChange(func(s contactform.State) {
		mu.Lock()
		defer mu.Unlock()
		phases = append(phases, s.Phase)
	}))
	t.Cleanup(form.Close)
	fill(t, form)

	done := make(chan error, 1)
	go func() {
		_, err := form.Submit(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool { return form.State().Busy() }, time.Second, 5*time.Millisecond)
	_, err = form.Submit(context.Background())
	assert.ErrorIs(t, err, contactform.ErrSubmitInFlight)

	require.NoError(t, <-done)
	assert.EqualValues(t, 1, r.posts.Load())

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, phases, contactform.PhaseSubmitting)
	assert.Equal(t, contactform.PhaseSubmitted, phases[len(phases)-1])
}

func TestForm_ResetDelays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5*time.Second, contactform.PageResetDelay)
	assert.Equal(t, 3*time.Second, contactform.ModalResetDelay)
	assert.Equal(t, time.Second, contactform.SimulatedDelay)
}

func TestForm_SimulatedDelayHonoursContext(t *testing.T) {
	t.Parallel()

	r, srv := newRelay(t, http.StatusOK, `{"success":true}`)
	r.healthy.Store(false)
	client, err := contactform.NewClient(srv.URL)
	require.NoError(t, err)

	form := contactform.NewForm(client, contactform.WithSimulatedDelay(time.Minute), quiet())
	fill(t, form)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	res, err := form.Submit(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, contactform.StatusFailed, res.Status)
	assert.Equal(t, contactform.PhaseFailed, form.State().Phase)
}
