package notify

import (
	"context"
	"net/url"
	"time"

	userdomain "bookkeeping-app-go/internal/domain/user"
	"bookkeeping-app-go/pkg/logger"
)

// LogResetNotifier stands in for an email sender. The link carries a live
// token, so it is only written at debug level.
type LogResetNotifier struct {
	log     logger.Logger
	baseURL string
}

func NewLogResetNotifier(log logger.Logger, baseURL string) *LogResetNotifier {
	return &LogResetNotifier{log: log, baseURL: baseURL}
}

func (n *LogResetNotifier) SendPasswordReset(ctx context.Context, user userdomain.User, token string, expiresAt time.Time) error {
	link, err := ResetLink(n.baseURL, token)
	if err != nil {
		return err
	}
	n.log.Info("auth.forgot_password: reset link issued",
		"user_id", user.ID,
		"expires_at", expiresAt.UTC().Format(time.RFC3339),
	)
	n.log.Debug("auth.forgot_password: reset link",
		"user_id", user.ID,
		"email", user.Email,
		"link", link,
	)
	return nil
}

// ResetLink appends the token as a query parameter to baseURL.
func ResetLink(baseURL, token string) (string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	query := parsed.Query()
	query.Set("token", token)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
