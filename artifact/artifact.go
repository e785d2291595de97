package artifact

import (
	"fmt"

	"github.com/arloliu/fossick/format"
)

// Artifact is a reconstructed blob tagged with its row id and content hash.
// It is the Raw variant: callers interpret Blob themselves. The artifact
// exclusively owns its Blob bytes.
type Artifact struct {
	Rid  int64
	UUID string
	Blob []byte
}

// Kind returns format.KindRaw.
func (a *Artifact) Kind() format.ArtifactKind {
	return format.KindRaw
}

func (a *Artifact) String() string {
	return fmt.Sprintf("<Artifact rid=%d, uuid=%q>", a.Rid, a.UUID)
}

// File is checked-in file content. The payload is identical to the Raw
// variant; the distinct type records what the caller asked for.
type File struct {
	Artifact
}

// Kind returns format.KindFile.
func (f *File) Kind() format.ArtifactKind {
	return format.KindFile
}

func (f *File) String() string {
	return fmt.Sprintf("<File rid=%d, uuid=%q>", f.Rid, f.UUID)
}
