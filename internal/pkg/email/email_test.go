package email

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/cmlabs-hris/hrm-backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, cfg config.SMTPConfig) *emailServiceImpl {
	t.Helper()
	svc, err := NewEmailService(cfg)
	require.NoError(t, err)
	impl := svc.(*emailServiceImpl)
	impl.backoff = 0
	return impl
}

func TestSendLeaveDecision(t *testing.T) {
	data := LeaveDecisionData{
		EmployeeName: "张三",
		LeaveType:    "SICK",
		StartTime:    "2024-03-01 09:00",
		EndTime:      "2024-03-03 09:00",
		Days:         2,
		Status:       "APPROVED",
		Approver:     "admin",
		Comment:      "好好休息",
	}

	t.Run("skips when smtp is not configured", func(t *testing.T) {
		svc := newTestService(t, config.SMTPConfig{})
		called := false
		svc.send = func(string, smtp.Auth, string, []string, []byte) error {
			called = true
			return nil
		}

		require.NoError(t, svc.SendLeaveDecision("a@example.com", data))
		assert.False(t, called)
	})

	t.Run("renders template and sends", func(t *testing.T) {
		svc := newTestService(t, config.SMTPConfig{Host: "smtp.local", Port: 25, From: "hr@example.com", FromName: "HR"})
		var sent string
		var recipients []string
		svc.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			assert.Equal(t, "smtp.local:25", addr)
			assert.Equal(t, "hr@example.com", from)
			recipients = to
			sent = string(msg)
			return nil
		}

		require.NoError(t, svc.SendLeaveDecision("a@example.com", data))
		assert.Equal(t, []string{"a@example.com"}, recipients)
		assert.True(t, strings.Contains(sent, "Subject: 请假申请结果: APPROVED"))
		assert.Contains(t, sent, "张三")
		assert.Contains(t, sent, "好好休息")
	})

	t.Run("retries then fails", func(t *testing.T) {
		svc := newTestService(t, config.SMTPConfig{Host: "smtp.local", Port: 25})
		attempts := 0
		svc.send = func(string, smtp.Auth, string, []string, []byte) error {
			attempts++
			return errors.New("connection refused")
		}

		err := svc.SendLeaveDecision("a@example.com", data)
		assert.Error(t, err)
		assert.Equal(t, maxRetries, attempts)
	})
}
