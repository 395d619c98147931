// Package store persists built objects on disk, one directory per object
// with a metadata summary, the full node encoding, and a flat constituent
// table for quick inspection by other tools.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/kherring/matterlab/internal/matter"
	"github.com/kherring/matterlab/internal/substance"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Metadata summarizes one stored object.
type Metadata struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Timestamp  time.Time `json:"timestamp"`
	Mass       float64   `json:"mass"`
	Density    float64   `json:"density"`
	Components int       `json:"components"`
}

// Save writes the object and its summary under a fresh ID derived from the
// name and the current time.
func (s *Store) Save(name string, n matter.Node) (string, error) {
	id := fmt.Sprintf("%s_%d", name, time.Now().UnixNano())
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := Metadata{
		ID:        id,
		Name:      name,
		Timestamp: time.Now(),
		Mass:      n.Mass(),
		Density:   n.Density(),
	}
	if c, ok := n.(*matter.Composite); ok {
		meta.Components = c.Len()
	} else if !n.IsEmpty() {
		meta.Components = 1
	}

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	data, err := matter.MarshalNode(n)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, "object.json"), data, 0644); err != nil {
		return "", err
	}

	if err := s.writeConstituents(dir, n); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) writeConstituents(dir string, n matter.Node) error {
	f, err := os.Create(filepath.Join(dir, "constituents.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"substance", "proportion"}); err != nil {
		return err
	}

	cs := n.Constituents()
	ids := make([]*substance.Substance, 0, len(cs))
	for sub := range cs {
		ids = append(ids, sub)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].ID < ids[j].ID })
	for _, sub := range ids {
		row := []string{sub.ID, strconv.FormatFloat(cs[sub], 'f', 6, 64)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// List returns metadata for every stored object, newest first.
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	all := make([]Metadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta Metadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		all = append(all, meta)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Timestamp.After(all[j].Timestamp) })
	return all, nil
}

// LoadMetadata reads one object's summary.
func (s *Store) LoadMetadata(id string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Load reads an object back, resolving substances through reg.
func (s *Store) Load(id string, reg *substance.Registry) (matter.Node, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "object.json"))
	if err != nil {
		return nil, err
	}
	return matter.UnmarshalNode(data, reg)
}

// LoadConstituents reads the flat constituent table of a stored object.
func (s *Store) LoadConstituents(id string) (map[string]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, id, "constituents.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64)
	for i, rec := range records {
		if i == 0 || len(rec) != 2 {
			continue
		}
		p, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			continue
		}
		out[rec[0]] = p
	}
	return out, nil
}
