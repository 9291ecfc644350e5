package internal

import "context"

// HistoryLister is the backend capability used by HistoryListController
type HistoryLister interface {
	ListHistory(ctx context.Context, skip, limit int) ([]HistorySessionSummary, error)
}

// HistoryReader is the backend capability used by HistoryDetailController
type HistoryReader interface {
	GetHistoryDetail(ctx context.Context, id int64) (*HistorySessionDetail, error)
	DeleteHistory(ctx context.Context, id int64) error
}

// ListRenderState is what the history list should show
type ListRenderState int

const (
	ListIdle ListRenderState = iota
	ListLoading
	ListErrored
	ListEmpty
	ListPopulated
)

func (s ListRenderState) String() string {
	switch s {
	case ListLoading:
		return "loading"
	case ListErrored:
		return "errored"
	case ListEmpty:
		return "empty"
	case ListPopulated:
		return "populated"
	default:
		return "idle"
	}
}

// HistoryListController fetches one page of stored sessions
type HistoryListController struct {
	backend HistoryLister
	tr      Translator
	store   *Store[[]HistorySessionSummary]
	skip    int
	limit   int
}

// NewHistoryListController creates a list controller for the page [skip, skip+limit)
func NewHistoryListController(backend HistoryLister, tr Translator, skip, limit int) *HistoryListController {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if skip < 0 {
		skip = 0
	}
	return &HistoryListController{
		backend: backend,
		tr:      tr,
		store:   NewStore[[]HistorySessionSummary](),
		skip:    skip,
		limit:   limit,
	}
}

// Store exposes the controller's state for rendering
func (c *HistoryListController) Store() *Store[[]HistorySessionSummary] {
	return c.store
}

// Load fetches the page. Failures end in Errored with the connectivity message.
func (c *HistoryListController) Load(ctx context.Context) {
	c.store.Begin()
	sessions, err := c.backend.ListHistory(ctx, c.skip, c.limit)
	if err != nil {
		LogDebug("history list failed: %v", err)
		c.store.Fail(c.tr.T(KeyErrorConnect))
		return
	}
	if sessions == nil {
		sessions = []HistorySessionSummary{}
	}
	c.store.Succeed(sessions)
}

// Retry re-runs Load; it is the manual action offered in the Errored state
func (c *HistoryListController) Retry(ctx context.Context) {
	c.Load(ctx)
}

// RenderState collapses the store into the list's five render states
func (c *HistoryListController) RenderState() ListRenderState {
	st := c.store.State()
	switch st.Kind {
	case StateLoading:
		return ListLoading
	case StateErrored:
		return ListErrored
	case StateResolved:
		if len(st.Value) == 0 {
			return ListEmpty
		}
		return ListPopulated
	default:
		return ListIdle
	}
}

// DeleteOutcome is the result of a user-triggered deletion
type DeleteOutcome int

const (
	// DeleteCancelled means the user declined; nothing was sent
	DeleteCancelled DeleteOutcome = iota
	// DeleteSucceeded means the caller should leave the detail view
	DeleteSucceeded
	// DeleteFailed means the caller should show a blocking notice; the detail stays
	DeleteFailed
)

func (o DeleteOutcome) String() string {
	switch o {
	case DeleteSucceeded:
		return "deleted"
	case DeleteFailed:
		return "failed"
	default:
		return "cancelled"
	}
}

// Confirmer asks the user to confirm a destructive action
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(prompt string) bool

// Confirm calls f
func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// HistoryDetailController shows and deletes one stored session
type HistoryDetailController struct {
	backend HistoryReader
	tr      Translator
	store   *Store[*HistorySessionDetail]
	id      int64
}

// NewHistoryDetailController creates a detail controller
func NewHistoryDetailController(backend HistoryReader, tr Translator) *HistoryDetailController {
	return &HistoryDetailController{
		backend: backend,
		tr:      tr,
		store:   NewStore[*HistorySessionDetail](),
	}
}

// Store exposes the controller's state for rendering
func (c *HistoryDetailController) Store() *Store[*HistorySessionDetail] {
	return c.store
}

// Load fetches session id. Not-found and connectivity failures map to
// distinct messages; neither is retried.
func (c *HistoryDetailController) Load(ctx context.Context, id int64) {
	c.id = id
	c.store.Begin()
	detail, err := c.backend.GetHistoryDetail(ctx, id)
	if err != nil {
		LogDebug("history detail %d failed: %v", id, err)
		if IsNotFound(err) {
			c.store.Fail(c.tr.T(KeyHistNotFound))
		} else {
			c.store.Fail(c.tr.T(KeyErrorConnect))
		}
		return
	}
	c.store.Succeed(detail)
}

// Delete asks for confirmation and deletes the loaded session. The store is
// never modified: on failure the detail remains displayed. Without a
// successfully loaded session nothing is sent and the outcome is DeleteFailed.
func (c *HistoryDetailController) Delete(ctx context.Context, confirm Confirmer) DeleteOutcome {
	if c.store.State().Kind != StateResolved {
		LogDebug("delete requested without a loaded session")
		return DeleteFailed
	}
	if confirm == nil || !confirm.Confirm(c.tr.T(KeyHistDelConfirm)) {
		return DeleteCancelled
	}
	if err := c.backend.DeleteHistory(ctx, c.id); err != nil {
		LogDebug("delete history %d failed: %v", c.id, err)
		return DeleteFailed
	}
	return DeleteSucceeded
}

// DeleteFailureMessage is the notice shown for DeleteFailed
func (c *HistoryDetailController) DeleteFailureMessage() string {
	return c.tr.T(KeyHistDelFail)
}
