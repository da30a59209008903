package workspace

import (
	"time"

	"github.com/google/uuid"

	"github.com/ibengeu/YASP-sub006/internal/gziputil"
)

// Revision is one immutable version of a document's text. Large texts are
// held gzip-compressed; Text inflates on demand.
type Revision struct {
	ID        string
	CreatedAt time.Time
	Bytes     int // uncompressed size
	Lines     int

	data    []byte
	gzipped bool
}

// RevisionInfo is the externally visible description of a revision.
type RevisionInfo struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Bytes     int       `json:"bytes"`
	Lines     int       `json:"lines"`
}

func newRevision(text string, compressCutoff int) (*Revision, error) {
	rev := &Revision{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Bytes:     len(text),
		Lines:     countLines(text),
	}
	if len(text) >= compressCutoff {
		data, err := gziputil.Compress([]byte(text))
		if err != nil {
			return nil, err
		}
		rev.data = data
		rev.gzipped = true
		return rev, nil
	}
	rev.data = []byte(text)
	return rev, nil
}

// Text returns the revision's text, inflating if stored compressed.
func (r *Revision) Text() (string, error) {
	if !r.gzipped {
		return string(r.data), nil
	}
	data, err := gziputil.Decompress(r.data)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r *Revision) info() RevisionInfo {
	return RevisionInfo{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		Bytes:     r.Bytes,
		Lines:     r.Lines,
	}
}
