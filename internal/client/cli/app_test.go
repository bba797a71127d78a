package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/realty/internal/catalog"
	"github.com/dmitrijs2005/realty/internal/catalog/catalogtest"
	"github.com/dmitrijs2005/realty/internal/client/config"
	"github.com/dmitrijs2005/realty/internal/common"
	"github.com/dmitrijs2005/realty/internal/logging"
	"github.com/dmitrijs2005/realty/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDrafts() []catalog.Draft {
	return []catalog.Draft{
		{Title: "Casa Centro", Category: catalog.CategoryHouse, Price: 3200, Location: "Centro",
			Bedrooms: 3, Bathrooms: 2, Area: 180, Active: true},
		{Title: "Studio Norte", Category: catalog.CategoryStudio, Price: 800, Location: "Zona Norte",
			Bedrooms: 1, Bathrooms: 1, Area: 35, Active: true},
		{Title: "Sala Comercial", Category: catalog.CategoryCommercial, Price: 5000, Location: "Centro",
			Bedrooms: 0, Bathrooms: 1, Area: 90, Active: false},
	}
}

type appFixture struct {
	app    *App
	mem    *catalogtest.Memory
	out    *[]string
	logout int
}

func newFixture(t *testing.T) *appFixture {
	t.Helper()
	f := &appFixture{mem: catalogtest.NewMemory(seedDrafts()...)}
	f.out = captureOutput(t)

	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(session.DefaultAdminSecret), nil }
	t.Cleanup(func() { readPassword = orig })

	cfg := &config.Config{ContactPhone: "+55 35 98832-6287", AgentName: "Raphael"}
	f.app = newApp(cfg, logging.Discard(), f.mem, session.DefaultVerifier(), func() { f.logout++ },
		bufio.NewReader(strings.NewReader("")), io.Discard)
	return f
}

// feed replaces the pending user input with lines.
func (f *appFixture) feed(lines ...string) {
	f.app.reader = bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func (f *appFixture) output() string {
	return strings.Join(*f.out, "\n")
}

func (f *appFixture) reset() {
	*f.out = nil
}

func (f *appFixture) load(t *testing.T) {
	t.Helper()
	require.NoError(t, f.app.reload(context.Background()))
	f.reset()
}

func (f *appFixture) login(t *testing.T) {
	t.Helper()
	f.feed(session.DefaultAdminID)
	require.NoError(t, f.app.Login(context.Background(), nil))
	require.True(t, f.app.isAdmin())
	f.reset()
}

func TestApp_ListBeforeLoad(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.app.List(context.Background(), nil))
	assert.Equal(t, "Loading listings...", f.output())
}

func TestApp_BrowseAndFilter(t *testing.T) {
	f := newFixture(t)
	f.load(t)
	ctx := context.Background()

	require.NoError(t, f.app.List(ctx, nil))
	assert.Contains(t, f.output(), "Casa Centro")
	assert.Contains(t, f.output(), "Studio Norte")
	assert.NotContains(t, f.output(), "Sala Comercial")
	assert.Contains(t, f.output(), "2 listing(s)")

	f.reset()
	require.NoError(t, f.app.Search(ctx, []string{"CENTRO"}))
	assert.Contains(t, f.output(), "1 listing(s)")
	assert.Contains(t, f.output(), "Casa Centro")

	f.reset()
	require.NoError(t, f.app.Type(ctx, []string{"Studio"}))
	assert.Contains(t, f.output(), "No listings found.")

	f.reset()
	require.NoError(t, f.app.Clear(ctx, nil))
	assert.Contains(t, f.output(), "2 listing(s)")

	f.reset()
	require.NoError(t, f.app.Price(ctx, []string{"low"}))
	assert.Contains(t, f.output(), "Studio Norte")
	assert.Contains(t, f.output(), "1 listing(s)")

	err := f.app.Price(ctx, []string{"cheap"})
	assert.ErrorIs(t, err, common.ErrorValidation)

	err = f.app.Type(ctx, nil)
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestApp_ShowHidesInactiveFromVisitors(t *testing.T) {
	f := newFixture(t)
	f.load(t)
	ctx := context.Background()

	err := f.app.Show(ctx, []string{"3"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Contains(t, f.output(), "Listing #3 not found.")

	f.login(t)
	require.NoError(t, f.app.Show(ctx, []string{"#3"}))
	assert.Contains(t, f.output(), "Sala Comercial")
	assert.Contains(t, f.output(), "(inactive)")

	err = f.app.Show(ctx, []string{"abc"})
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestApp_InquireAndContact(t *testing.T) {
	f := newFixture(t)
	f.load(t)
	ctx := context.Background()

	require.NoError(t, f.app.Inquire(ctx, []string{"1"}))
	assert.Contains(t, f.output(), "https://wa.me/5535988326287?text=")
	assert.Contains(t, f.output(), "Casa%20Centro")

	f.reset()
	f.feed("Ana", "", "", "Quero visitar")
	require.NoError(t, f.app.Contact(ctx, nil))
	assert.Contains(t, f.output(), "Ana")
	assert.Contains(t, f.output(), "Quero%20visitar")

	f.reset()
	f.feed("", "", "", "Oi")
	err := f.app.Contact(ctx, nil)
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.Contains(t, f.output(), "Please fill in name required")
}

func TestApp_LoginRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)
	readPassword = func(int) ([]byte, error) { return []byte("wrong"), nil }

	f.feed(session.DefaultAdminID)
	err := f.app.Login(context.Background(), nil)
	assert.ErrorIs(t, err, session.ErrInvalidCredentials)
	assert.False(t, f.app.isAdmin())
	assert.Contains(t, f.output(), session.ErrInvalidCredentials.Error())
}

func TestApp_LogoutDropsFormAndHidesInactive(t *testing.T) {
	f := newFixture(t)
	f.load(t)
	ctx := context.Background()
	f.login(t)

	require.NoError(t, f.app.List(ctx, nil))
	assert.Contains(t, f.output(), "3 listing(s)")
	assert.Contains(t, f.app.status(), "admin")

	f.app.openForm(0, catalog.NewDraft())
	require.NoError(t, f.app.Logout(ctx, nil))
	assert.False(t, f.app.formOpen())
	assert.False(t, f.app.isAdmin())
	assert.Equal(t, 1, f.logout)
	assert.Empty(t, f.app.status())

	f.reset()
	require.NoError(t, f.app.List(ctx, nil))
	assert.Contains(t, f.output(), "2 listing(s)")
}

func TestApp_AdminCommandsRequireSession(t *testing.T) {
	f := newFixture(t)
	f.load(t)
	ctx := context.Background()

	cmds := map[string]func(context.Context, []string) error{
		"add":    f.app.Add,
		"edit":   f.app.Edit,
		"toggle": f.app.Toggle,
		"delete": f.app.Delete,
		"stats":  f.app.Stats,
		"upload": f.app.Upload,
	}
	for name, cmd := range cmds {
		t.Run(name, func(t *testing.T) {
			err := cmd(ctx, []string{"1"})
			assert.ErrorIs(t, err, common.ErrorUnauthorized)
		})
	}
	assert.Zero(t, f.mem.Calls(catalogtest.OpInsert))
	assert.Zero(t, f.mem.Calls(catalogtest.OpUpdate))
	assert.Zero(t, f.mem.Calls(catalogtest.OpSetActive))
	assert.Zero(t, f.mem.Calls(catalogtest.OpDelete))
}

func TestApp_AddListing(t *testing.T) {
	f := newFixture(t)
	f.load(t)
	f.login(t)
	ctx := context.Background()

	f.feed("Loft Sul", "Studio", "1200,50", "Zona Sul", "", "", "40", "", "Perto do metrô")
	require.NoError(t, f.app.Add(ctx, nil))

	assert.Contains(t, f.output(), "Listing #4 created.")
	assert.False(t, f.app.formOpen())
	assert.Equal(t, 1, f.mem.Calls(catalogtest.OpInsert))

	p, ok := f.app.store.Lookup(4)
	require.True(t, ok)
	assert.Equal(t, "Loft Sul", p.Title)
	assert.Equal(t, catalog.CategoryStudio, p.Category)
	assert.Equal(t, 1200.5, p.Price)
	assert.Equal(t, 1, p.Bedrooms)
	assert.True(t, p.Active)
}

func TestApp_AddRejectsInvalidForm(t *testing.T) {
	f := newFixture(t)
	f.load(t)
	f.login(t)
	ctx := context.Background()

	f.feed("", "", "", "", "", "", "", "", "")
	err := f.app.Add(ctx, nil)
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.Contains(t, f.output(), "Invalid listing: title is required")
	assert.Zero(t, f.mem.Calls(catalogtest.OpInsert))
	assert.True(t, f.app.formOpen(), "a rejected form stays open")

	f.reset()
	f.feed("Casa", "House", "100", "Centro", "três")
	err = f.app.Add(ctx, nil)
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.Contains(t, f.output(), "Resuming the unsaved form.")
	assert.Contains(t, f.output(), "bedrooms must be a whole number")
	assert.True(t, f.app.formOpen())
}

func TestApp_AddShowsAlertOnRemoteFailure(t *testing.T) {
	f := newFixture(t)
	f.load(t)
	f.login(t)
	f.mem.Fail(catalogtest.OpInsert, errors.New("connection reset"))

	ctx := context.Background()

	f.feed("Loft Sul", "Studio", "1200", "Zona Sul", "", "", "", "", "")
	err := f.app.Add(ctx, nil)
	assert.ErrorIs(t, err, catalog.ErrMutationFailed)
	assert.Contains(t, f.output(), "Error: could not save changes.")
	assert.Len(t, f.app.store.All(), 3)
	require.True(t, f.app.formOpen(), "the entered values survive a failed insert")

	// retry keeps every answer blank, so the saved values come from the kept form
	f.mem.Fail(catalogtest.OpInsert, nil)
	f.reset()
	f.feed("", "", "", "", "", "", "", "", "")
	require.NoError(t, f.app.Add(ctx, nil))
	assert.Contains(t, f.output(), "Resuming the unsaved form.")
	assert.Contains(t, f.output(), "Listing #4 created.")
	assert.False(t, f.app.formOpen())

	p, ok := f.mem.Get(4)
	require.True(t, ok)
	assert.Equal(t, "Loft Sul", p.Title)
	assert.Equal(t, 1200.0, p.Price)
	assert.Equal(t, "Zona Sul", p.Location)
}

func TestApp_EditFailureKeepsFormForThatListing(t *testing.T) {
	f := newFixture(t)
	f.load(t)
	f.login(t)
	f.mem.Fail(catalogtest.OpUpdate, errors.New("timeout"))
	ctx := context.Background()

	f.feed("Casa Reformada", "", "", "", "", "", "", "", "")
	err := f.app.Edit(ctx, []string{"1"})
	assert.ErrorIs(t, err, catalog.ErrMutationFailed)
	require.True(t, f.app.formOpen())

	p, _ := f.mem.Get(1)
	assert.Equal(t, "Casa Centro", p.Title)

	// editing another listing starts from that listing, not the kept form
	f.reset()
	f.mem.Fail(catalogtest.OpUpdate, nil)
	f.feed("", "", "", "", "", "", "", "", "")
	require.NoError(t, f.app.Edit(ctx, []string{"2"}))
	assert.NotContains(t, f.output(), "Resuming")
	p, _ = f.mem.Get(2)
	assert.Equal(t, "Studio Norte", p.Title)
	assert.False(t, f.app.formOpen())
}

func TestApp_EditSubmitsWholeListing(t *testing.T) {
	f := newFixture(t)
	f.load(t)
	f.login(t)

	f.feed("Sala Nova", "Apartment", "5500", "Zona Sul", "2", "2", "95", "https://img.example.com/s.jpg", "Reformada")
	require.NoError(t, f.app.Edit(context.Background(), []string{"3"}))

	p, ok := f.mem.Get(3)
	require.True(t, ok)
	want := catalog.Draft{
		Title: "Sala Nova", Category: catalog.CategoryApartment, Price: 5500, Location: "Zona Sul",
		Bedrooms: 2, Bathrooms: 2, Area: 95, Image: "https://img.example.com/s.jpg",
		Description: "Reformada", Active: false,
	}
	assert.Equal(t, want, p.Draft, "the form carries the current active flag along with every other field")
	assert.Contains(t, f.output(), "Listing #3 updated.")
	assert.False(t, f.app.formOpen())
}

func TestApp_ToggleFlipsActive(t *testing.T) {
	f := newFixture(t)
	f.load(t)
	f.login(t)
	ctx := context.Background()

	require.NoError(t, f.app.Toggle(ctx, []string{"2"}))
	p, _ := f.mem.Get(2)
	assert.False(t, p.Active)
	assert.Contains(t, f.output(), "Listing #2 is now inactive.")

	f.reset()
	require.NoError(t, f.app.Toggle(ctx, []string{"2"}))
	p, _ = f.mem.Get(2)
	assert.True(t, p.Active)
	assert.Contains(t, f.output(), "Listing #2 is now active.")

	err := f.app.Toggle(ctx, []string{"99"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestApp_DeleteAsksForConfirmation(t *testing.T) {
	f := newFixture(t)
	f.load(t)
	f.login(t)
	ctx := context.Background()

	f.feed("n")
	err := f.app.Delete(ctx, []string{"1"})
	assert.ErrorIs(t, err, catalog.ErrNotConfirmed)
	assert.Contains(t, f.output(), "Deletion cancelled.")
	assert.Zero(t, f.mem.Calls(catalogtest.OpDelete))

	f.reset()
	f.feed("sim")
	require.NoError(t, f.app.Delete(ctx, []string{"1"}))
	_, ok := f.mem.Get(1)
	assert.False(t, ok)
	_, ok = f.app.store.Lookup(1)
	assert.False(t, ok)
	assert.Contains(t, f.output(), "Listing #1 deleted.")
}

func TestApp_Stats(t *testing.T) {
	f := newFixture(t)
	f.load(t)
	f.login(t)

	require.NoError(t, f.app.Stats(context.Background(), nil))
	assert.Contains(t, f.output(), "Listings: 3")
	assert.Contains(t, f.output(), "Average price: R$ 3.000")
	assert.Contains(t, f.output(), "Categories: 3")
}

func TestApp_ReloadKeepsListingsOnFailure(t *testing.T) {
	f := newFixture(t)
	f.load(t)
	f.mem.Fail(catalogtest.OpList, errors.New("timeout"))

	err := f.app.Reload(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, f.output(), "Could not load listings")
	assert.Len(t, f.app.currentView(), 2)
}

type fakeUploader struct {
	contentType string
	data        []byte
	err         error
}

func (u *fakeUploader) UploadImage(ctx context.Context, contentType string, data []byte) (string, error) {
	u.contentType, u.data = contentType, data
	if u.err != nil {
		return "", u.err
	}
	return "https://cdn.example.com/listings/1.png", nil
}

func TestApp_UploadImage(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	ctx := context.Background()

	err := f.app.Upload(ctx, []string{"photo.png"})
	assert.ErrorIs(t, err, common.ErrorInternal, "no uploader configured")

	up := &fakeUploader{}
	f.app.images = up

	png := []byte("\x89PNG\r\n\x1a\n0000")
	path := filepath.Join(t.TempDir(), "photo.png")
	require.NoError(t, os.WriteFile(path, png, 0o600))

	f.reset()
	require.NoError(t, f.app.Upload(ctx, []string{path}))
	assert.Equal(t, "image/png", up.contentType)
	assert.Equal(t, png, up.data)
	assert.Contains(t, f.output(), "Uploaded: https://cdn.example.com/listings/1.png")

	f.reset()
	up.err = errors.New("bucket down")
	require.Error(t, f.app.Upload(ctx, []string{path}))
	assert.Contains(t, f.output(), "could not upload the image")

	err = f.app.Upload(ctx, []string{filepath.Join(t.TempDir(), "missing.png")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApp_DeleteFailureKeepsListing(t *testing.T) {
	f := newFixture(t)
	f.load(t)
	f.login(t)
	f.mem.Fail(catalogtest.OpDelete, errors.New("503 from collection"))

	f.feed("y")
	err := f.app.Delete(context.Background(), []string{"2"})
	assert.ErrorIs(t, err, catalog.ErrMutationFailed)
	assert.Contains(t, f.output(), "Error: could not save changes.")

	_, ok := f.app.store.Lookup(2)
	assert.True(t, ok)
	assert.Equal(t, 1, f.mem.Calls(catalogtest.OpDelete))
	assert.Equal(t, 2, f.mem.Calls(catalogtest.OpList), "the gateway reloads after a failed mutation")
}
