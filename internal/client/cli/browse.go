package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/realty/internal/catalog"
	"github.com/dmitrijs2005/realty/internal/common"
	"github.com/dmitrijs2005/realty/internal/contact"
)

func parseID(args []string, usage string) (int64, error) {
	if len(args) == 0 {
		printlnFn("Usage:", usage)
		return 0, fmt.Errorf("%w: listing id required", common.ErrorValidation)
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(args[0], "#"), 10, 64)
	if err != nil || id <= 0 {
		printlnFn("Invalid listing id:", args[0])
		return 0, fmt.Errorf("%w: invalid listing id %q", common.ErrorValidation, args[0])
	}
	return id, nil
}

// lookupVisible finds a listing the current session may see.
func (a *App) lookupVisible(id int64) (catalog.Property, error) {
	p, ok := a.store.Lookup(id)
	if !ok || (!p.Active && !a.isAdmin()) {
		printlnFn(fmt.Sprintf("Listing #%d not found.", id))
		return catalog.Property{}, fmt.Errorf("listing %d: %w", id, common.ErrorNotFound)
	}
	return p, nil
}

// List prints the current view.
func (a *App) List(ctx context.Context, args []string) error {
	if !a.store.Loaded() {
		printlnFn("Loading listings...")
		return nil
	}

	view := a.currentView()
	if len(view) == 0 {
		printlnFn("No listings found.")
		return nil
	}
	for _, p := range view {
		printlnFn(formatLine(p))
	}
	printlnFn(fmt.Sprintf("%d listing(s)", len(view)))
	return nil
}

func (a *App) Search(ctx context.Context, args []string) error {
	term := strings.Join(args, " ")
	a.setCriteria(func(c *catalog.Criteria) { c.Search = term })
	return a.List(ctx, nil)
}

func (a *App) Type(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: type <category|all>")
		return fmt.Errorf("%w: category required", common.ErrorValidation)
	}
	category := strings.Join(args, " ")
	a.setCriteria(func(c *catalog.Criteria) { c.Category = category })
	return a.List(ctx, nil)
}

func (a *App) Price(ctx context.Context, args []string) error {
	var raw string
	if len(args) > 0 {
		raw = args[0]
	}
	band, err := catalog.ParseBand(raw)
	if err != nil {
		printlnFn("Usage: price <all|low|medium|high>")
		return err
	}
	a.setCriteria(func(c *catalog.Criteria) { c.Band = band })
	return a.List(ctx, nil)
}

func (a *App) Clear(ctx context.Context, args []string) error {
	a.setCriteria(func(c *catalog.Criteria) { *c = catalog.Criteria{} })
	return a.List(ctx, nil)
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args, "show <id>")
	if err != nil {
		return err
	}
	p, err := a.lookupVisible(id)
	if err != nil {
		return err
	}
	printlnFn(formatDetails(p))
	return nil
}

// Inquire prints the WhatsApp link asking the agent about a listing.
func (a *App) Inquire(ctx context.Context, args []string) error {
	id, err := parseID(args, "inquire <id>")
	if err != nil {
		return err
	}
	p, err := a.lookupVisible(id)
	if err != nil {
		return err
	}
	printlnFn("Open this link to talk to the agent:")
	printlnFn(a.linker.InquiryLink(p))
	return nil
}

// Contact fills in the contact form and prints the WhatsApp link for it.
func (a *App) Contact(ctx context.Context, args []string) error {
	var f contact.Form
	var err error

	if f.Name, err = GetSimpleText(a.reader, "Your name", a.out); err != nil {
		return err
	}
	if f.Phone, err = GetSimpleText(a.reader, "Your phone", a.out); err != nil {
		return err
	}
	if f.Email, err = GetSimpleText(a.reader, "Your email", a.out); err != nil {
		return err
	}
	if f.Message, err = GetSimpleText(a.reader, "Message", a.out); err != nil {
		return err
	}

	link, err := a.linker.ContactLink(f)
	if err != nil {
		printlnFn("Please fill in", strings.TrimPrefix(err.Error(), common.ErrorValidation.Error()+": "))
		return err
	}
	printlnFn("Open this link to send your message:")
	printlnFn(link)
	return nil
}

func (a *App) Reload(ctx context.Context, args []string) error {
	if err := a.reload(ctx); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("%d listing(s) loaded.", len(a.store.All())))
	return nil
}
