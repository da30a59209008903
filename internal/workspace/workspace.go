// Package workspace is the session layer above the document core: it tracks
// open documents and their in-memory revisions, memoizes parse results, and
// serves diff requests between revisions. The document and diff packages stay
// pure; all caching and bookkeeping lives here.
package workspace

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/ibengeu/YASP-sub006/internal/diff"
	"github.com/ibengeu/YASP-sub006/internal/document"
)

// ErrNotFound is returned when a document or revision ID is unknown.
var ErrNotFound = errors.New("not found")

// ErrTooLarge is returned when a document exceeds the configured size cap.
var ErrTooLarge = errors.New("document too large")

// Config holds workspace tuning parameters.
type Config struct {
	CacheSize           int // LRU entries for memoized parse results
	MaxRevisions        int // revisions kept per document
	CompressCutoffBytes int // revision texts at/above this size are stored gzipped
	MaxDocumentBytes    int // reject documents larger than this
}

// Snapshot is a memoized parse result: the document plus its position index,
// produced together and immutable until the next parse.
type Snapshot struct {
	Doc       *document.Document
	Positions map[string]document.Position
}

// DocumentInfo describes an open document's current state.
type DocumentInfo struct {
	ID         string    `json:"id"`
	RevisionID string    `json:"revisionId"`
	Revisions  int       `json:"revisions"`
	Bytes      int       `json:"bytes"`
	Lines      int       `json:"lines"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type documentState struct {
	id        string
	createdAt time.Time
	revisions []*Revision
}

func (d *documentState) current() *Revision {
	return d.revisions[len(d.revisions)-1]
}

// Workspace tracks open documents and owns the caches the core deliberately
// does not have.
type Workspace struct {
	cfg Config

	mu   sync.RWMutex
	docs map[string]*documentState

	parsed *lru.Cache[string, *Snapshot] // key: sha256 of text
	sf     singleflight.Group

	// Single-slot memo for the most recent diff request.
	diffMu   sync.Mutex
	diffKey  string
	diffLast diff.Result
}

// New creates a workspace.
func New(cfgs ...Config) (*Workspace, error) {
	cfg := Config{
		CacheSize:           128,
		MaxRevisions:        50,
		CompressCutoffBytes: 32 * 1024,
		MaxDocumentBytes:    4 * 1024 * 1024,
	}
	if len(cfgs) > 0 {
		c := cfgs[0]
		if c.CacheSize > 0 {
			cfg.CacheSize = c.CacheSize
		}
		if c.MaxRevisions > 0 {
			cfg.MaxRevisions = c.MaxRevisions
		}
		if c.CompressCutoffBytes > 0 {
			cfg.CompressCutoffBytes = c.CompressCutoffBytes
		}
		if c.MaxDocumentBytes > 0 {
			cfg.MaxDocumentBytes = c.MaxDocumentBytes
		}
	}

	parsed, err := lru.New[string, *Snapshot](cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Workspace{
		cfg:    cfg,
		docs:   make(map[string]*documentState),
		parsed: parsed,
	}, nil
}

// OpenCount returns the number of open documents, for the metrics gauge.
func (w *Workspace) OpenCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.docs)
}

// Open parses text and registers it as a new document with one revision.
func (w *Workspace) Open(text string) (DocumentInfo, *Snapshot, error) {
	if len(text) > w.cfg.MaxDocumentBytes {
		return DocumentInfo{}, nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(text), w.cfg.MaxDocumentBytes)
	}

	snap, err := w.parse(text)
	if err != nil {
		return DocumentInfo{}, nil, err
	}

	rev, err := newRevision(text, w.cfg.CompressCutoffBytes)
	if err != nil {
		return DocumentInfo{}, nil, err
	}

	state := &documentState{
		id:        uuid.New().String(),
		createdAt: rev.CreatedAt,
		revisions: []*Revision{rev},
	}

	w.mu.Lock()
	w.docs[state.id] = state
	w.mu.Unlock()

	slog.Debug("document opened", "doc", state.id, "bytes", rev.Bytes, "lines", rev.Lines)
	return w.infoLocked(state), snap, nil
}

// Close removes a document and its revisions from the workspace.
func (w *Workspace) Close(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.docs[id]; !ok {
		return fmt.Errorf("%w: document %s", ErrNotFound, id)
	}
	delete(w.docs, id)
	return nil
}

// Get returns the document's current info.
func (w *Workspace) Get(id string) (DocumentInfo, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	state, ok := w.docs[id]
	if !ok {
		return DocumentInfo{}, fmt.Errorf("%w: document %s", ErrNotFound, id)
	}
	return w.infoLocked(state), nil
}

// Text returns the text of a revision; an empty revisionID means the current
// revision.
func (w *Workspace) Text(id, revisionID string) (string, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	rev, err := w.revisionLocked(id, revisionID)
	if err != nil {
		return "", err
	}
	return rev.Text()
}

// Snapshot parses (memoized) the current revision of the document.
func (w *Workspace) Snapshot(id string) (*Snapshot, string, error) {
	text, err := w.Text(id, "")
	if err != nil {
		return nil, "", err
	}
	snap, err := w.parse(text)
	if err != nil {
		return nil, "", err
	}
	return snap, text, nil
}

// ValueAt resolves a canonical path against the current revision. Absence is
// reported via found, not an error.
func (w *Workspace) ValueAt(id string, path document.Path) (value any, found bool, err error) {
	snap, _, err := w.Snapshot(id)
	if err != nil {
		return nil, false, err
	}
	value, found = document.Find(snap.Doc, path)
	return value, found, nil
}

// Positions returns the current revision's position index.
func (w *Workspace) Positions(id string) (map[string]document.Position, error) {
	snap, _, err := w.Snapshot(id)
	if err != nil {
		return nil, err
	}
	return snap.Positions, nil
}

// UpdateAt replaces the value at path, serializes, reparses, and appends a new
// revision. On any failure the previous revision stays current.
func (w *Workspace) UpdateAt(id string, path document.Path, value any) (DocumentInfo, *Snapshot, error) {
	snap, _, err := w.Snapshot(id)
	if err != nil {
		return DocumentInfo{}, nil, err
	}

	updated, err := document.Update(snap.Doc, path, value)
	if err != nil {
		return DocumentInfo{}, nil, err
	}
	text, err := document.Serialize(updated)
	if err != nil {
		return DocumentInfo{}, nil, err
	}
	if len(text) > w.cfg.MaxDocumentBytes {
		return DocumentInfo{}, nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(text), w.cfg.MaxDocumentBytes)
	}

	// Reparse so positions and the value tree reflect the canonical text.
	newSnap, err := w.parse(text)
	if err != nil {
		return DocumentInfo{}, nil, err
	}

	rev, err := newRevision(text, w.cfg.CompressCutoffBytes)
	if err != nil {
		return DocumentInfo{}, nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	state, ok := w.docs[id]
	if !ok {
		return DocumentInfo{}, nil, fmt.Errorf("%w: document %s", ErrNotFound, id)
	}
	state.revisions = append(state.revisions, rev)
	if len(state.revisions) > w.cfg.MaxRevisions {
		state.revisions = state.revisions[len(state.revisions)-w.cfg.MaxRevisions:]
	}

	slog.Debug("document updated", "doc", id, "path", path.String(), "revision", rev.ID)
	return w.infoLocked(state), newSnap, nil
}

// Revisions lists a document's revisions, oldest first.
func (w *Workspace) Revisions(id string) ([]RevisionInfo, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	state, ok := w.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: document %s", ErrNotFound, id)
	}
	out := make([]RevisionInfo, len(state.revisions))
	for i, r := range state.revisions {
		out[i] = r.info()
	}
	return out, nil
}

// DiffRevisions compares two revisions of a document. An empty newRevisionID
// means the current revision; an empty oldRevisionID means the revision just
// before the new one (or the new one itself when it is the only revision).
func (w *Workspace) DiffRevisions(id, oldRevisionID, newRevisionID string, opts diff.Options) (diff.Result, error) {
	w.mu.RLock()
	state, ok := w.docs[id]
	if !ok {
		w.mu.RUnlock()
		return diff.Result{}, fmt.Errorf("%w: document %s", ErrNotFound, id)
	}

	newRev, err := w.revisionOfLocked(state, newRevisionID)
	if err != nil {
		w.mu.RUnlock()
		return diff.Result{}, err
	}
	var oldRev *Revision
	if oldRevisionID == "" {
		oldRev = newRev
		for i, r := range state.revisions {
			if r == newRev && i > 0 {
				oldRev = state.revisions[i-1]
				break
			}
		}
	} else {
		oldRev, err = w.revisionOfLocked(state, oldRevisionID)
		if err != nil {
			w.mu.RUnlock()
			return diff.Result{}, err
		}
	}
	w.mu.RUnlock()

	oldText, err := oldRev.Text()
	if err != nil {
		return diff.Result{}, err
	}
	newText, err := newRev.Text()
	if err != nil {
		return diff.Result{}, err
	}
	return w.DiffTexts(oldText, newText, opts), nil
}

// DiffTexts compares two raw texts. The most recent result is memoized in a
// single slot, which covers the common UI pattern of re-requesting the same
// comparison while either side is unchanged.
func (w *Workspace) DiffTexts(oldText, newText string, opts diff.Options) diff.Result {
	key := fmt.Sprintf("%s|%s|%d|%d", hashText(oldText), hashText(newText), opts.Strategy, opts.CollapseThreshold)

	w.diffMu.Lock()
	if w.diffKey == key {
		res := w.diffLast
		w.diffMu.Unlock()
		return res
	}
	w.diffMu.Unlock()

	res := diff.Compare(oldText, newText, opts)

	w.diffMu.Lock()
	w.diffKey = key
	w.diffLast = res
	w.diffMu.Unlock()
	return res
}

// parse builds and indexes text, memoized by content hash. Concurrent parses
// of the same text are coalesced.
func (w *Workspace) parse(text string) (*Snapshot, error) {
	key := hashText(text)
	if snap, ok := w.parsed.Get(key); ok {
		return snap, nil
	}

	v, err, _ := w.sf.Do(key, func() (any, error) {
		// Double-check inside singleflight.
		if snap, ok := w.parsed.Get(key); ok {
			return snap, nil
		}
		doc, err := document.Build(text)
		if err != nil {
			return nil, err
		}
		snap := &Snapshot{
			Doc:       doc,
			Positions: document.Index(doc, text),
		}
		w.parsed.Add(key, snap)
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

func (w *Workspace) infoLocked(state *documentState) DocumentInfo {
	cur := state.current()
	return DocumentInfo{
		ID:         state.id,
		RevisionID: cur.ID,
		Revisions:  len(state.revisions),
		Bytes:      cur.Bytes,
		Lines:      cur.Lines,
		CreatedAt:  state.createdAt,
		UpdatedAt:  cur.CreatedAt,
	}
}

func (w *Workspace) revisionLocked(id, revisionID string) (*Revision, error) {
	state, ok := w.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: document %s", ErrNotFound, id)
	}
	return w.revisionOfLocked(state, revisionID)
}

func (w *Workspace) revisionOfLocked(state *documentState, revisionID string) (*Revision, error) {
	if revisionID == "" {
		return state.current(), nil
	}
	for _, r := range state.revisions {
		if r.ID == revisionID {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: revision %s", ErrNotFound, revisionID)
}

func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(strings.TrimSuffix(text, "\n"), "\n") + 1
}
