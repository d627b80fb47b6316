package client

import (
	"context"
	"strings"
	"sync"

	"commentboard/internal/models"
)

// Display modes, checked in order loading, error, empty, list.
const (
	ModeLoading = "loading"
	ModeError   = "error"
	ModeEmpty   = "empty"
	ModeList    = "list"
)

// View is the board's client-side state container. It never mutates its local
// list ahead of server confirmation; every mutation re-fetches the full list.
// Overlapping fetches are not cancelled; the last response to resolve wins.
type View struct {
	client *Client

	mu       sync.Mutex
	comments []models.Comment
	loading  bool
	err      string
	draft    string
	editing  *models.Comment
	editText string
	addOpen  bool
	editOpen bool
}

// NewView creates a View in the initial loading state. Call Load to populate it.
func NewView(c *Client) *View {
	return &View{client: c, loading: true}
}

// Load fetches the comment list. The loading flag clears on completion whether
// or not the fetch succeeded; a failure stores a user-visible error instead.
func (v *View) Load(ctx context.Context) {
	comments, err := v.client.ListComments(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.err = err.Error()
	} else {
		v.comments = comments
	}
	v.loading = false
}

// OpenAdd opens the add dialog.
func (v *View) OpenAdd() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.addOpen = true
}

// CloseAdd closes the add dialog without submitting.
func (v *View) CloseAdd() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.addOpen = false
}

// SetDraft updates the add dialog's text buffer.
func (v *View) SetDraft(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.draft = text
}

// CanSubmitAdd reports whether the draft holds anything beyond whitespace.
func (v *View) CanSubmitAdd() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return strings.TrimSpace(v.draft) != ""
}

// SubmitAdd creates a comment from the draft, then re-fetches the list,
// closes the dialog, and clears the buffer. A whitespace-only draft is a
// no-op. A failure only sets the shared error.
func (v *View) SubmitAdd(ctx context.Context) {
	v.mu.Lock()
	text := strings.TrimSpace(v.draft)
	v.mu.Unlock()
	if text == "" {
		return
	}

	if _, err := v.client.CreateComment(ctx, text); err != nil {
		v.setError(err)
		return
	}

	v.mu.Lock()
	v.draft = ""
	v.addOpen = false
	v.mu.Unlock()

	v.Load(ctx)
}

// StartEdit opens the edit dialog seeded with the target's current text.
func (v *View) StartEdit(comment models.Comment) {
	v.mu.Lock()
	defer v.mu.Unlock()
	target := comment
	v.editing = &target
	v.editText = comment.Text
	v.editOpen = true
}

// SetEditText updates the edit dialog's text buffer.
func (v *View) SetEditText(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.editText = text
}

// CloseEdit closes the edit dialog without submitting.
func (v *View) CloseEdit() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.editing = nil
	v.editText = ""
	v.editOpen = false
}

// SubmitEdit updates the target comment's text, then re-fetches the list and
// closes the dialog. A no-op without an edit target or with a blank buffer.
func (v *View) SubmitEdit(ctx context.Context) {
	v.mu.Lock()
	editing := v.editing
	text := strings.TrimSpace(v.editText)
	v.mu.Unlock()
	if editing == nil || text == "" {
		return
	}

	if _, err := v.client.UpdateComment(ctx, editing.ID, text); err != nil {
		v.setError(err)
		return
	}

	v.mu.Lock()
	v.editing = nil
	v.editText = ""
	v.editOpen = false
	v.mu.Unlock()

	v.Load(ctx)
}

// Delete removes a comment immediately (no confirmation), then re-fetches.
func (v *View) Delete(ctx context.Context, id uint) {
	if _, err := v.client.DeleteComment(ctx, id); err != nil {
		v.setError(err)
		return
	}

	v.Load(ctx)
}

// Comments returns a snapshot of the current list.
func (v *View) Comments() []models.Comment {
	v.mu.Lock()
	defer v.mu.Unlock()
	snapshot := make([]models.Comment, len(v.comments))
	copy(snapshot, v.comments)
	return snapshot
}

// Loading reports whether the initial fetch is still outstanding.
func (v *View) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Err returns the last fetch or mutation failure message, if any.
func (v *View) Err() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// AddOpen reports whether the add dialog is open.
func (v *View) AddOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.addOpen
}

// EditOpen reports whether the edit dialog is open.
func (v *View) EditOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.editOpen
}

// EditText returns the edit dialog's current buffer.
func (v *View) EditText() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.editText
}

// Mode returns the current display mode.
func (v *View) Mode() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	switch {
	case v.loading:
		return ModeLoading
	case v.err != "":
		return ModeError
	case len(v.comments) == 0:
		return ModeEmpty
	default:
		return ModeList
	}
}

func (v *View) setError(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.err = err.Error()
}
