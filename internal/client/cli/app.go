package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/progresspilot/internal/client/api"
	"github.com/dmitrijs2005/progresspilot/internal/client/config"
	"github.com/dmitrijs2005/progresspilot/internal/client/session"
)

type App struct {
	config  *config.Config
	client  *api.Client
	session *session.Store
	reader  *bufio.Reader
	user    *api.User
}

// NewApp wires the API client and the session store. If a session file from a
// previous run exists, the user starts out logged in.
func NewApp(c *config.Config) *App {
	app := &App{
		config:  c,
		client:  api.NewClient(c.ServerEndpointAddr, c.RequestTimeout),
		session: session.NewStore(c.SessionFile),
		reader:  bufio.NewReader(os.Stdin),
	}

	if sess, err := app.session.Load(); err == nil {
		app.client.SetToken(sess.Token)
		app.user = &sess.User
	}

	return app
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.user.Email)
}

func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
