package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/notely/internal/client/models"
)

func pageArg(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	p, err := strconv.Atoi(args[0])
	if err != nil || p < 1 {
		return 0, usage("page must be a positive number")
	}
	return p, nil
}

func printPage(p *models.NotePage) {
	for _, n := range p.Data {
		printlnFn(n.String())
	}
	printlnFn(p.Summary())
}

// List prints one page of the user's notes, newest first.
func (a *App) List(ctx context.Context, args []string) error {
	page, err := pageArg(args)
	if err != nil {
		return err
	}

	p, err := a.noteService.List(ctx, page)
	if err != nil {
		return err
	}

	printPage(p)
	return nil
}

// Search prints the first page of notes whose title contains the given text.
func (a *App) Search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage("search <text>")
	}

	p, err := a.noteService.Search(ctx, strings.Join(args, " "), 1)
	if err != nil {
		return err
	}

	printPage(p)
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("show <id>")
	}

	n, err := a.noteService.Get(ctx, args[0])
	if err != nil {
		return err
	}

	printlnFn(n.Details())
	return nil
}

// Add prompts for a title and a multi-line body and creates the note.
func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Enter content", a.out)
	if err != nil {
		return err
	}

	n, err := a.noteService.Create(ctx, title, content)
	if err != nil {
		return err
	}

	printlnFn("Note created:", n.ID)
	return nil
}

// Edit prompts for a new title and body; empty answers leave the field
// unchanged.
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("edit <id>")
	}
	id := args[0]

	title, err := getSimpleText(a.reader, "Enter new title (empty keeps current)", a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Enter new content (empty keeps current)", a.out)
	if err != nil {
		return err
	}

	var titlePtr, contentPtr *string
	if title != "" {
		titlePtr = &title
	}
	if content != "" {
		contentPtr = &content
	}
	if titlePtr == nil && contentPtr == nil {
		printlnFn("Nothing to change")
		return nil
	}

	n, err := a.noteService.Update(ctx, id, titlePtr, contentPtr)
	if err != nil {
		return err
	}

	printlnFn("Note updated:", n.ID)
	return nil
}

// Delete removes a note after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("delete <id>")
	}

	answer, err := getSimpleText(a.reader, "Delete note "+args[0]+"? (y/N)", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		printlnFn("Cancelled")
		return nil
	}

	if err := a.noteService.Delete(ctx, args[0]); err != nil {
		return err
	}

	printlnFn("Note deleted")
	return nil
}
