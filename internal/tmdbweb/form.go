package tmdbweb

import (
	"context"
	"fmt"
	"time"
)

// numberClearPresses is how many Delete presses empty a Kendo numeric input.
const numberClearPresses = 5

// field is one form input and the value to enter into it.
type field struct {
	selector string
	value    string
	// replace clears the input first; otherwise text is typed after the
	// current value.
	replace bool
}

// form drives the modal edit form of a listing grid.
type form struct {
	page Page
	sel  FormSelectors
	wait time.Duration
}

// open clicks trigger and waits for the modal. what names the trigger in
// errors.
func (f form) open(ctx context.Context, trigger, what string) error {
	present, err := f.page.Exists(ctx, trigger)
	if err != nil {
		return fmt.Errorf("look up %s: %w", what, err)
	}
	if !present {
		return notFoundOn(ctx, f.page, what)
	}
	if err := f.page.Click(ctx, trigger); err != nil {
		return fmt.Errorf("click %s: %w", what, err)
	}
	waitCtx, cancel := context.WithTimeout(ctx, f.wait)
	defer cancel()
	if err := f.page.WaitVisible(waitCtx, f.sel.Ready); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return notFoundOn(ctx, f.page, "edit form after clicking "+what)
	}
	return nil
}

func (f form) fill(ctx context.Context, fields []field) error {
	for _, fd := range fields {
		if fd.replace {
			if err := f.page.SetValue(ctx, fd.selector, ""); err != nil {
				return fmt.Errorf("clear %s: %w", fd.selector, err)
			}
		}
		if fd.value == "" {
			continue
		}
		if err := f.page.Type(ctx, fd.selector, fd.value); err != nil {
			return fmt.Errorf("type into %s: %w", fd.selector, err)
		}
	}
	return nil
}

// setNumber enters the record number. The numeric input is a pair of
// data-bound elements that ignore direct typing, so it is reached by tabbing
// back from the name input, emptied with Delete, and typed into.
func (f form) setNumber(ctx context.Context, number int) error {
	if err := f.page.Click(ctx, f.sel.NameInput); err != nil {
		return fmt.Errorf("focus name input: %w", err)
	}
	if err := f.page.Press(ctx, KeyTab, true); err != nil {
		return fmt.Errorf("tab back to number input: %w", err)
	}
	for range numberClearPresses {
		if err := f.page.Press(ctx, KeyDelete, false); err != nil {
			return fmt.Errorf("clear number input: %w", err)
		}
	}
	if err := f.page.TypeKeys(ctx, fmt.Sprint(number)); err != nil {
		return fmt.Errorf("type number: %w", err)
	}
	return nil
}

// submit saves the form and waits for the modal to close.
func (f form) submit(ctx context.Context) error {
	if err := f.page.Click(ctx, f.sel.SaveButton); err != nil {
		return fmt.Errorf("click save: %w", err)
	}
	waitCtx, cancel := context.WithTimeout(ctx, f.wait)
	defer cancel()
	if err := f.page.WaitHidden(waitCtx, f.sel.Ready); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return notFoundOn(ctx, f.page, "closed edit form after saving")
	}
	return nil
}
