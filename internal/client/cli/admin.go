package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/realty/internal/catalog"
	"github.com/dmitrijs2005/realty/internal/common"
	"github.com/dmitrijs2005/realty/internal/filex"
)

const maxImageSize = 10 << 20

func (a *App) requireAdmin() bool {
	if a.isAdmin() {
		return true
	}
	printlnFn("This command requires an admin session, use login first.")
	return false
}

// fillForm prompts for every editable field of d, showing current values.
// The active flag is not prompted for; d keeps whatever it carried.
func (a *App) fillForm(d *catalog.Draft) error {
	var err error

	if d.Title, err = GetField(a.reader, "Title", d.Title, a.out); err != nil {
		return err
	}

	known := make([]string, len(catalog.KnownCategories))
	for i, c := range catalog.KnownCategories {
		known[i] = string(c)
	}
	category, err := GetField(a.reader, "Type ("+strings.Join(known, ", ")+")", string(d.Category), a.out)
	if err != nil {
		return err
	}
	d.Category = catalog.Category(category)

	if d.Price, err = GetFloat(a.reader, "Price", d.Price, a.out); err != nil {
		return err
	}
	if d.Location, err = GetField(a.reader, "Location", d.Location, a.out); err != nil {
		return err
	}
	if d.Bedrooms, err = GetInt(a.reader, "Bedrooms", d.Bedrooms, a.out); err != nil {
		return err
	}
	if d.Bathrooms, err = GetInt(a.reader, "Bathrooms", d.Bathrooms, a.out); err != nil {
		return err
	}
	if d.Area, err = GetFloat(a.reader, "Area", d.Area, a.out); err != nil {
		return err
	}
	if d.Image, err = GetField(a.reader, "Image URL", d.Image, a.out); err != nil {
		return err
	}
	if d.Description, err = GetField(a.reader, "Description", d.Description, a.out); err != nil {
		return err
	}
	return nil
}

// reportMutation tells the user how a gateway call ended. The view is
// refreshed in every case since the gateway has reloaded the store.
func (a *App) reportMutation(ctx context.Context, err error, success string) error {
	a.refreshView()

	switch {
	case err == nil:
		printlnFn(success)
	case errors.Is(err, catalog.ErrMutationFailed):
		a.logger.Error(ctx, "mutation failed", "error", err)
		printlnFn("Error: " + catalog.ErrMutationFailed.Error() + ".")
	case errors.Is(err, common.ErrorValidation):
		printlnFn("Invalid listing:", strings.TrimPrefix(err.Error(), common.ErrorValidation.Error()+": "))
	case errors.Is(err, catalog.ErrNotConfirmed):
		printlnFn("Deletion cancelled.")
	default:
		printlnFn("Error:", err)
	}
	return err
}

// submitForm runs fill and save over the open form. The form is closed
// only once the save succeeds; on failure it stays open with the entered
// values so the next add or edit of the same listing resumes it.
func (a *App) submitForm(ctx context.Context, form *catalog.Draft, resumed bool, save func(catalog.Draft) (catalog.Property, error), success string) error {
	if resumed {
		printlnFn("Resuming the unsaved form.")
	}

	if err := a.fillForm(form); err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return a.reportMutation(ctx, err, "")
		}
		return err
	}
	if !a.formOpen() {
		printlnFn("Form closed.")
		return nil
	}

	p, err := save(*form)
	if err != nil {
		return a.reportMutation(ctx, err, "")
	}
	a.discardForm()
	return a.reportMutation(ctx, nil, fmt.Sprintf(success, p.ID))
}

func (a *App) Add(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return common.ErrorUnauthorized
	}
	form, resumed := a.openForm(0, catalog.NewDraft())
	return a.submitForm(ctx, form, resumed, func(d catalog.Draft) (catalog.Property, error) {
		return a.gateway.Insert(ctx, d)
	}, "Listing #%d created.")
}

func (a *App) Edit(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return common.ErrorUnauthorized
	}
	id, err := parseID(args, "edit <id>")
	if err != nil {
		return err
	}
	p, err := a.lookupVisible(id)
	if err != nil {
		return err
	}

	form, resumed := a.openForm(id, p.Draft)
	return a.submitForm(ctx, form, resumed, func(d catalog.Draft) (catalog.Property, error) {
		return a.gateway.Update(ctx, id, d)
	}, "Listing #%d updated.")
}

func (a *App) Toggle(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return common.ErrorUnauthorized
	}
	id, err := parseID(args, "toggle <id>")
	if err != nil {
		return err
	}

	if _, err := a.lookupVisible(id); err != nil {
		return err
	}

	active, err := a.gateway.Toggle(ctx, id)
	state := "inactive"
	if active {
		state = "active"
	}
	return a.reportMutation(ctx, err, fmt.Sprintf("Listing #%d is now %s.", id, state))
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return common.ErrorUnauthorized
	}
	id, err := parseID(args, "delete <id>")
	if err != nil {
		return err
	}
	if _, err := a.lookupVisible(id); err != nil {
		return err
	}

	confirmed, err := Confirm(a.reader, catalog.DeletePrompt, a.out)
	if err != nil {
		return err
	}
	err = a.gateway.Delete(ctx, id, confirmed)
	return a.reportMutation(ctx, err, fmt.Sprintf("Listing #%d deleted.", id))
}

// Stats prints the dashboard figures over every listing.
func (a *App) Stats(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return common.ErrorUnauthorized
	}
	st := catalog.Summarize(a.store.All())
	printlnFn(fmt.Sprintf("Listings: %d", st.Total))
	printlnFn(fmt.Sprintf("Average price: %s", formatPrice(float64(st.AveragePrice))))
	printlnFn(fmt.Sprintf("Categories: %d", st.Categories))
	return nil
}

// Upload sends a local photo to the image bucket and prints the URL to use
// as a listing's image.
func (a *App) Upload(ctx context.Context, args []string) error {
	if !a.requireAdmin() {
		return common.ErrorUnauthorized
	}
	if len(args) == 0 {
		printlnFn("Usage: upload <file>")
		return fmt.Errorf("%w: file required", common.ErrorValidation)
	}
	if a.images == nil {
		printlnFn("Image upload is not available.")
		return common.ErrorInternal
	}

	data, err := filex.ReadLimited(strings.Join(args, " "), maxImageSize)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	url, err := a.images.UploadImage(ctx, http.DetectContentType(data), data)
	if err != nil {
		a.logger.Error(ctx, "image upload failed", "error", err)
		printlnFn("Error: could not upload the image.")
		return err
	}
	printlnFn("Uploaded:", url)
	printlnFn("Use it as the Image URL when adding or editing a listing.")
	return nil
}
