package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	apperrors "github.com/openshelf/library-admin/internal/errors"
	"github.com/openshelf/library-admin/internal/mocks"
	"github.com/openshelf/library-admin/internal/service"
	"github.com/openshelf/library-admin/internal/testutil"
)

func newRecoveryService(t *testing.T, sender *mocks.MockRecoverySender) *service.AuthService {
	t.Helper()
	return service.NewAuthService(service.AuthServiceOptions{
		Provider: mocks.NewMockIdentityProvider(gomock.NewController(t)),
		Recovery: sender,
		Sessions: mocks.NewMockSessionStore(gomock.NewController(t)),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:      testutil.FixedTimeFunc(testutil.TestTime()),
	})
}

func TestSendRecoveryCode_TrimsAndForwardsEmail(t *testing.T) {
	sender := mocks.NewMockRecoverySender(gomock.NewController(t))
	sender.EXPECT().
		SendVerificationCode(gomock.Any(), "reader@openshelf.example").
		Return(nil)

	svc := newRecoveryService(t, sender)
	err := svc.SendRecoveryCode(context.Background(), "  reader@openshelf.example  ")
	require.NoError(t, err)
}

func TestSendRecoveryCode_RequiresEmail(t *testing.T) {
	sender := mocks.NewMockRecoverySender(gomock.NewController(t))

	svc := newRecoveryService(t, sender)
	err := svc.SendRecoveryCode(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))
}

func TestSubmitRecoveryCode_ForwardsAllFields(t *testing.T) {
	sender := mocks.NewMockRecoverySender(gomock.NewController(t))
	sender.EXPECT().
		VerifyCode(gomock.Any(), "reader@openshelf.example", "424242", "brand-new-pw").
		Return(nil)

	svc := newRecoveryService(t, sender)
	err := svc.SubmitRecoveryCode(context.Background(), "reader@openshelf.example", "424242", "brand-new-pw")
	require.NoError(t, err)
}

func TestSubmitRecoveryCode_ValidatesBeforeUpstream(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		code     string
		password string
	}{
		{name: "missing email", code: "424242", password: "pw"},
		{name: "missing code", email: "reader@openshelf.example", password: "pw"},
		{name: "missing password", email: "reader@openshelf.example", code: "424242"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// No EXPECT calls: the upstream must not be reached.
			sender := mocks.NewMockRecoverySender(gomock.NewController(t))

			svc := newRecoveryService(t, sender)
			err := svc.SubmitRecoveryCode(context.Background(), tc.email, tc.code, tc.password)
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))
		})
	}
}

func TestSubmitRecoveryCode_UpstreamRejectionSurfaces(t *testing.T) {
	sender := mocks.NewMockRecoverySender(gomock.NewController(t))
	sender.EXPECT().
		VerifyCode(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(apperrors.Upstream("Verification code is invalid or expired."))

	svc := newRecoveryService(t, sender)
	err := svc.SubmitRecoveryCode(context.Background(), "reader@openshelf.example", "000000", "pw")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUpstream, apperrors.CodeOf(err))
	assert.Contains(t, apperrors.UserMessage(err), "invalid or expired")
}
