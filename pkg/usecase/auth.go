package usecase

import (
	"context"
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/wedlock-lab/mandap/pkg/domain/model"
)

// Auth implements AuthUseCase with the dashboard's shared password. The
// token is a reversible base64 encoding of password:timestamp. It is a
// placeholder scheme the dashboard contract requires, not a security
// boundary.
type Auth struct {
	password string
}

// NewAuth creates an Auth use case. An empty password means
// authentication is unconfigured and every login fails with a
// configuration error.
func NewAuth(password string) *Auth {
	return &Auth{
		password: password,
	}
}

// Login checks the password and issues a token
func (a *Auth) Login(ctx context.Context, password string) (string, error) {
	if a.password == "" {
		return "", goerr.New("Authentication not configured",
			goerr.T(model.ErrTagConfig))
	}

	if password != a.password {
		return "", goerr.Wrap(model.ErrIncorrectPassword, "login rejected")
	}

	raw := a.password + ":" + strconv.FormatInt(time.Now().UnixMilli(), 10)
	token := base64.StdEncoding.EncodeToString([]byte(raw))

	ctxlog.From(ctx).Info("Dashboard login succeeded")
	return token, nil
}

// Verify reports whether a token decodes to the current password. Any
// malformed token is simply invalid, never an error.
func (a *Auth) Verify(ctx context.Context, token string) bool {
	if a.password == "" || token == "" {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return false
	}

	// Token format is password:timestamp; only the password part is checked
	password := strings.SplitN(string(decoded), ":", 2)[0]
	return password == a.password
}
