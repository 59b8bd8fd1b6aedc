// Package snapshot is the binary codec for the engine's four serializable
// indices (prefix, suffix, 2-gram, length). The BK-tree and dictionary are
// deliberately excluded: BK-tree traversal is fast enough to rebuild at
// startup, and the dictionary is reconstructed from the text log.
package snapshot

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/sinanm89/lexigraph/internal/engine/lenindex"
	"github.com/sinanm89/lexigraph/internal/engine/ngram"
	"github.com/sinanm89/lexigraph/internal/engine/ordindex"
)

// Format magic values. LTC1 carries only prefix/suffix; LTC2 adds 2-gram
// and length.
const (
	MagicV1 = "LTC1"
	MagicV2 = "LTC2"
)

// Snapshot is the subset of engine state the codec round-trips.
type Snapshot struct {
	Prefix  *ordindex.Index
	Suffix  *ordindex.Index
	Grams   *ngram.Index
	Lengths *lenindex.Index
}

// Save writes snap to path as the given format version, fsyncing before return.
func Save(path string, snap Snapshot, version string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	if _, err := w.WriteString(version); err != nil {
		return err
	}
	if err := writeStringSet(w, snap.Prefix.All()); err != nil {
		return err
	}
	if err := writeStringSet(w, snap.Suffix.All()); err != nil {
		return err
	}
	if version == MagicV2 {
		if err := writeGrams(w, snap.Grams); err != nil {
			return err
		}
		if err := writeLengths(w, snap.Lengths); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Sync()
}

func writeStringSet(w io.Writer, items []string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(items))); err != nil {
		return err
	}
	for _, s := range items {
		if err := binary.Write(w, binary.LittleEndian, uint16(len(s))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
	}
	return nil
}

func writeGrams(w io.Writer, idx *ngram.Index) error {
	entries := idx.Entries()
	if err := binary.Write(w, binary.LittleEndian, uint32(len(entries))); err != nil {
		return err
	}
	for _, e := range entries {
		if err := binary.Write(w, binary.LittleEndian, uint16(len(e.Gram))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, e.Gram); err != nil {
			return err
		}
		if err := writeIDs(w, e.IDs); err != nil {
			return err
		}
	}
	return nil
}

func writeLengths(w io.Writer, idx *lenindex.Index) error {
	entries := idx.Entries()
	if err := binary.Write(w, binary.LittleEndian, uint32(len(entries))); err != nil {
		return err
	}
	for _, e := range entries {
		if err := binary.Write(w, binary.LittleEndian, uint16(e.Length)); err != nil {
			return err
		}
		if err := writeIDs(w, e.IDs); err != nil {
			return err
		}
	}
	return nil
}

func writeIDs(w io.Writer, ids []int) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(ids))); err != nil {
		return err
	}
	for _, id := range ids {
		if err := binary.Write(w, binary.LittleEndian, uint32(id)); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a snapshot file. ok is false on any format mismatch (bad
// magic, short read, inconsistent counts), in which case the caller should
// fall back to a text-log rebuild rather than treat it as a hard error.
func Load(path string) (snap Snapshot, ok bool, err error) {
	f, ferr := os.Open(path)
	if ferr != nil {
		return Snapshot{}, false, ferr
	}
	defer f.Close()
	r := bufio.NewReader(f)

	magic := make([]byte, 4)
	if _, err := io.ReadFull(r, magic); err != nil {
		return Snapshot{}, false, nil
	}
	version := string(magic)
	if version != MagicV1 && version != MagicV2 {
		return Snapshot{}, false, nil
	}

	prefixItems, err := readStringSet(r)
	if err != nil {
		return Snapshot{}, false, nil
	}
	suffixItems, err := readStringSet(r)
	if err != nil {
		return Snapshot{}, false, nil
	}

	snap.Prefix = ordindex.New()
	for _, s := range prefixItems {
		snap.Prefix.Insert(s)
	}
	snap.Suffix = ordindex.New()
	for _, s := range suffixItems {
		snap.Suffix.Insert(s)
	}

	if version == MagicV2 {
		grams, err := readGrams(r)
		if err != nil {
			return Snapshot{}, false, nil
		}
		lengths, err := readLengths(r)
		if err != nil {
			return Snapshot{}, false, nil
		}
		snap.Grams = grams
		snap.Lengths = lengths
	}

	return snap, true, nil
}

func readStringSet(r io.Reader) ([]string, error) {
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	out := make([]string, count)
	for i := range out {
		var l uint16
		if err := binary.Read(r, binary.LittleEndian, &l); err != nil {
			return nil, err
		}
		buf := make([]byte, l)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		out[i] = string(buf)
	}
	return out, nil
}

func readIDs(r io.Reader) ([]int, error) {
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	out := make([]int, count)
	for i := range out {
		var id uint32
		if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
			return nil, err
		}
		out[i] = int(id)
	}
	return out, nil
}

func readGrams(r io.Reader) (*ngram.Index, error) {
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	idx := ngram.New()
	for i := uint32(0); i < count; i++ {
		var l uint16
		if err := binary.Read(r, binary.LittleEndian, &l); err != nil {
			return nil, err
		}
		buf := make([]byte, l)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		ids, err := readIDs(r)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			idx.AddGram(string(buf), id)
		}
	}
	return idx, nil
}

func readLengths(r io.Reader) (*lenindex.Index, error) {
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	idx := lenindex.New()
	for i := uint32(0); i < count; i++ {
		var length uint16
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			return nil, err
		}
		ids, err := readIDs(r)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			idx.Add(int(length), id)
		}
	}
	return idx, nil
}

// ValidFor reports whether the snapshot at snapPath is usable for the text
// log at textPath: both must exist and the snapshot must be strictly newer.
func ValidFor(textPath, snapPath string) bool {
	textInfo, err := os.Stat(textPath)
	if err != nil {
		return false
	}
	snapInfo, err := os.Stat(snapPath)
	if err != nil {
		return false
	}
	return snapInfo.ModTime().After(textInfo.ModTime())
}
