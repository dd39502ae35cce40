package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/vidbatch/internal/client/client"
	"github.com/dmitrijs2005/vidbatch/internal/client/services"
)

func (a *App) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the account behind the current token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := a.auth.WhoAmI(cmd.Context())
			if err != nil {
				return err
			}
			name := u.Email
			if full := joinName(u.FirstName, u.LastName); full != "" {
				name = fmt.Sprintf("%s <%s>", full, u.Email)
			}
			a.printf("%s (id %s)\n", name, u.ID)
			return nil
		},
	}
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}

func (a *App) pingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start := time.Now()
			st, err := a.auth.Ping(cmd.Context())
			if err != nil {
				return err
			}
			took := time.Since(start).Round(time.Millisecond)
			if st.Authenticated && st.User != nil {
				a.printf("Server reachable in %s; authenticated as %s\n", took, st.User.Email)
				return nil
			}
			a.printf("Server reachable in %s; not authenticated\n", took)
			return nil
		},
	}
}

func (a *App) tokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Show whether a usable token is configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st := a.auth.TokenStatus()
			a.println(describeToken(st))
			switch st.State {
			case services.TokenMissing:
				return client.ErrNotAuthenticated
			case services.TokenExpired:
				return client.ErrTokenExpired
			}
			return nil
		},
	}
}

func describeToken(st services.TokenStatus) string {
	switch st.State {
	case services.TokenMissing:
		return "No token configured"
	case services.TokenExpired:
		return "Token expired at " + st.ExpiresAt.Local().Format(time.RFC1123)
	case services.TokenValid:
		return fmt.Sprintf("Token valid until %s (%s left)", st.ExpiresAt.Local().Format(time.RFC1123), time.Until(st.ExpiresAt).Round(time.Second))
	default:
		return "Token set; expiry unknown"
	}
}

var errEmptyToken = errors.New("no token entered")

// Login reads a bearer token without echo and uses it for the rest of the
// session.
func (a *App) Login() error {
	raw, err := a.readSecret("Paste token: ")
	if err != nil {
		return err
	}
	defer clear(raw)

	token := strings.TrimSpace(string(raw))
	if token == "" {
		return errEmptyToken
	}
	a.println(describeToken(a.auth.Login(token)))
	return nil
}
