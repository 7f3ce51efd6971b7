package fault

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_DecisionTable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category Category
		message  string
		status   int
	}{
		{"deadline", context.DeadlineExceeded, CategoryTimeout, MsgTimeout, 0},
		{"canceled", fmt.Errorf("get boxes: %w", context.Canceled), CategoryTimeout, MsgTimeout, 0},
		{"timeout text", errors.New("i/o timeout"), CategoryTimeout, MsgTimeout, 0},
		{"refused", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, CategoryNetwork, MsgNetwork, 0},
		{"network text", errors.New("network is unreachable"), CategoryNetwork, MsgNetwork, 0},
		{"auth text", errors.New("request unauthorized"), CategoryAuth, MsgAuth, 0},
		{"401", &StatusError{StatusCode: 401, Message: "Invalid key"}, CategoryAuth, MsgAuth, 401},
		{"404", &StatusError{StatusCode: 404, Message: "Box not found"}, CategoryNotFound, MsgNotFound, 404},
		{"422 empty", &StatusError{StatusCode: 422}, CategoryValidation, MsgValidation, 422},
		{"500", &StatusError{StatusCode: 500, Message: "boom"}, CategoryServer, MsgServer, 500},
		{"503", &StatusError{StatusCode: 503, Message: "down"}, CategoryServer, MsgServer, 503},
		{"418", &StatusError{StatusCode: 418, Message: "teapot"}, CategoryUnknown, MsgUnknown, 418},
		{"plain", errors.New("something odd"), CategoryUnknown, MsgUnknown, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.message, got.Message)
			assert.Equal(t, tt.status, got.StatusCode)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestClassify_ValidationKeepsServerMessage(t *testing.T) {
	err := &StatusError{StatusCode: 422, Message: "Value must be positive", Code: "VALIDATION"}

	got := Classify(err)

	assert.Equal(t, CategoryValidation, got.Category)
	assert.Equal(t, "Value must be positive", got.Message)
	assert.Equal(t, 422, got.StatusCode)
}

func TestClassify_NeverReclassifies(t *testing.T) {
	first := Classify(context.DeadlineExceeded)
	wrapped := fmt.Errorf("list boxes: %w", first)

	assert.Same(t, first, Classify(wrapped))
	assert.Same(t, ErrAPIKeyMissing, Classify(ErrAPIKeyMissing))
}

func TestClassify_Nil(t *testing.T) {
	assert.Nil(t, Classify(nil))
	assert.Equal(t, Category(""), CategoryOf(nil))
	assert.Equal(t, "", Message(nil))
}

func TestMessageHidesRawText(t *testing.T) {
	err := errors.New("pq: password authentication failed for user admin")
	assert.Equal(t, MsgAuth, Message(err))
	assert.NotContains(t, Message(err), "admin")
}

func FuzzClassify(f *testing.F) {
	f.Add("timeout", 0)
	f.Add("connection refused", 0)
	f.Add("Value must be positive", 422)
	f.Add("", 500)

	known := map[Category]bool{
		CategoryNetwork: true, CategoryTimeout: true, CategoryAuth: true, CategoryNotFound: true,
		CategoryValidation: true, CategoryServer: true, CategoryUnknown: true,
	}

	f.Fuzz(func(t *testing.T, msg string, status int) {
		var err error = errors.New(msg)
		if status != 0 {
			err = &StatusError{StatusCode: status, Message: msg}
		}
		got := Classify(err)
		if got == nil || !known[got.Category] || got.Message == "" {
			t.Fatalf("Classify(%q, %d) = %+v", msg, status, got)
		}
	})
}
