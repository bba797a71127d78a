package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/realty/internal/catalog"
	"github.com/dmitrijs2005/realty/internal/client/client"
	"github.com/dmitrijs2005/realty/internal/client/config"
	"github.com/dmitrijs2005/realty/internal/contact"
	"github.com/dmitrijs2005/realty/internal/logging"
	"github.com/dmitrijs2005/realty/internal/session"
)

type imageUploader interface {
	UploadImage(ctx context.Context, contentType string, data []byte) (string, error)
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	store   *catalog.Store
	gateway *catalog.Gateway
	gate    *session.Gate
	linker  contact.Linker
	images  imageUploader
	reader  *bufio.Reader
	out     io.Writer

	mu       sync.Mutex
	criteria catalog.Criteria
	view     []catalog.Property
	form     *catalog.Draft
	formID   int64
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	rc := client.NewRESTClient(c.ServerURL, c.APIKey, c.RequestTimeout)
	a := newApp(c, logger, rc, rc.Verifier(), rc.ClearToken, bufio.NewReader(os.Stdin), os.Stdout)
	a.images = rc
	return a, nil
}

// newApp wires the app over any collection. onLogout runs when an admin
// session ends, before the app's own cleanup.
func newApp(c *config.Config, logger logging.Logger, col catalog.Collection, v session.CredentialVerifier,
	onLogout func(), in *bufio.Reader, out io.Writer) *App {

	store := catalog.NewStore(col, logger)
	a := &App{
		config:  c,
		logger:  logger.With("module", "cli"),
		store:   store,
		gateway: catalog.NewGateway(col, store, logger),
		gate:    session.NewGate(v),
		linker:  contact.NewLinker(c.ContactPhone, c.AgentName),
		reader:  in,
		out:     out,
	}

	if onLogout != nil {
		a.gate.OnLogout(onLogout)
	}
	a.gate.OnLogout(a.discardForm)

	return a
}

// refreshView recomputes the visible listings from the store, the filters
// and the session. It runs after every change to any of them.
func (a *App) refreshView() {
	a.mu.Lock()
	defer a.mu.Unlock()
	c := a.criteria
	c.Admin = a.gate.IsAdmin()
	a.view = a.store.Query(c)
}

func (a *App) currentView() []catalog.Property {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]catalog.Property(nil), a.view...)
}

func (a *App) setCriteria(fn func(c *catalog.Criteria)) {
	a.mu.Lock()
	fn(&a.criteria)
	a.mu.Unlock()
	a.refreshView()
}

// openForm opens the edit form for listing id (0 for a new listing) filled
// with d. A form left open for the same listing by a failed save is resumed
// instead, keeping what was typed.
func (a *App) openForm(id int64, d catalog.Draft) (form *catalog.Draft, resumed bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.form != nil && a.formID == id {
		return a.form, true
	}
	a.form, a.formID = &d, id
	return a.form, false
}

func (a *App) discardForm() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.form, a.formID = nil, 0
}

func (a *App) formOpen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.form != nil
}

func (a *App) isAdmin() bool {
	return a.gate.IsAdmin()
}

// reload refreshes the store and the view. Failures are reported to the
// user and the previous listings stay on screen.
func (a *App) reload(ctx context.Context) error {
	err := a.store.Reload(ctx)
	a.refreshView()
	if err != nil {
		printlnFn("Could not load listings, showing the last known ones.")
	}
	return err
}

func (a *App) status() string {
	if a.isAdmin() {
		return fmt.Sprintf("(admin %s)", a.gate.Session().Subject)
	}
	return ""
}

// Run loads the catalog and starts the REPL. It blocks until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to the listing CLI (type 'help' for commands)")
	printlnFn("Loading listings...")
	_ = a.reload(ctx)

	runREPL(ctx, a, a.status, a.reader)
}
